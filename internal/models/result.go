package models

// OperationResult — единый ответ мутирующих операций
type OperationResult struct {
	Success bool   `json:"success"`
	PassID  string `json:"passId,omitempty"`
	Error   string `json:"error,omitempty"`
	SaveURL string `json:"saveUrl,omitempty"`
}

// WalletAvailability — ответ isWalletAvailable
type WalletAvailability struct {
	IsAvailable        bool     `json:"isAvailable"`
	CanAddPasses       bool     `json:"canAddPasses"`
	Platform           Platform `json:"platform"`
	SupportedPassTypes []string `json:"supportedPassTypes"`
}

type PassSummary struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type PassList struct {
	Passes []PassSummary `json:"passes"`
}

// PassLookup — ответ getPassById; Pass == nil если не найден
type PassLookup struct {
	Pass    map[string]any `json:"pass"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
}

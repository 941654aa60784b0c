package dto

import "github.com/vbncursed/vkr/wallet-service/internal/models"

// BalanceRequest — тело updateStoredValueBalance
type BalanceRequest struct {
	Balance *float64 `json:"balance"`
}

// ShareRequest — тело sharePKPass
type ShareRequest struct {
	Recipients []string `json:"recipients"`
}

// GoogleSaveRequest — класс и объект для addToGoogleWallet
type GoogleSaveRequest struct {
	Class  models.GoogleWalletClass  `json:"class"`
	Object models.GoogleWalletObject `json:"object"`
}

type CanAddPassesResponse struct {
	CanAddPasses bool `json:"canAddPasses"`
}

type NFCSEResponse struct {
	IsAvailable bool `json:"isAvailable"`
}

type ConstantsResponse struct {
	PI float64 `json:"PI"`
}

// ValueRequest — тело устаревшего setValueAsync
type ValueRequest struct {
	Value string `json:"value"`
}

// ViewLoadRequest — уведомление страницы о загрузке URL
type ViewLoadRequest struct {
	URL string `json:"url"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

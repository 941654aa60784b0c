package models

type ImageURI struct {
	URI string `json:"uri"`
}

type Image struct {
	SourceURI          ImageURI `json:"sourceUri"`
	ContentDescription string   `json:"contentDescription,omitempty"`
}

type TranslatedString struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

type LocalizedString struct {
	DefaultValue TranslatedString `json:"defaultValue"`
}

// GoogleWalletClass — класс пропуска Google Wallet
type GoogleWalletClass struct {
	ID                  string           `json:"id"`
	IssuerName          string           `json:"issuerName"`
	ReviewStatus        string           `json:"reviewStatus,omitempty"`
	Logo                *Image           `json:"logo,omitempty"`
	HexBackgroundColor  string           `json:"hexBackgroundColor,omitempty"`
	LocalizedIssuerName *LocalizedString `json:"localizedIssuerName,omitempty"`
}

type GoogleBarcode struct {
	Type          string `json:"type"`
	Value         string `json:"value"`
	AlternateText string `json:"alternateText,omitempty"`
}

type TextModule struct {
	Header string `json:"header"`
	Body   string `json:"body"`
	ID     string `json:"id"`
}

type LinkURI struct {
	URI         string `json:"uri"`
	Description string `json:"description"`
	ID          string `json:"id"`
}

type LinksModule struct {
	URIs []LinkURI `json:"uris"`
}

// GoogleWalletObject — объект (экземпляр) пропуска Google Wallet
type GoogleWalletObject struct {
	ID              string           `json:"id"`
	ClassID         string           `json:"classId"`
	State           ObjectState      `json:"state,omitempty"`
	CardTitle       *LocalizedString `json:"cardTitle,omitempty"`
	Header          *LocalizedString `json:"header,omitempty"`
	Barcode         *GoogleBarcode   `json:"barcode,omitempty"`
	HeroImage       *Image           `json:"heroImage,omitempty"`
	TextModulesData []TextModule     `json:"textModulesData,omitempty"`
	LinksModuleData *LinksModule     `json:"linksModuleData,omitempty"`
}

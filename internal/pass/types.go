package pass

// Attributes — нетипизированный ввод вызывающей стороны
type Attributes map[string]any

// Style — макет пропуска; определяет ключ вложенного объекта с полями
type Style string

const (
	StyleBoardingPass Style = "boardingPass"
	StyleCoupon       Style = "coupon"
	StyleEventTicket  Style = "eventTicket"
	StyleGeneric      Style = "generic"
	StyleStoreCard    Style = "storeCard"
)

func (s Style) Valid() bool {
	switch s {
	case StyleBoardingPass, StyleCoupon, StyleEventTicket, StyleGeneric, StyleStoreCard:
		return true
	}
	return false
}

// Field — пара label/value; порядок в группе значим
type Field struct {
	Key           string `json:"key"`
	Label         string `json:"label,omitempty"`
	Value         any    `json:"value"`
	TextAlignment string `json:"textAlignment,omitempty"`
	ChangeMessage string `json:"changeMessage,omitempty"`
}

type Barcode struct {
	Format          string `json:"format"`
	Message         string `json:"message"`
	MessageEncoding string `json:"messageEncoding"`
	AltText         string `json:"altText,omitempty"`
}

type Location struct {
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Altitude     *float64 `json:"altitude,omitempty"`
	RelevantText string   `json:"relevantText,omitempty"`
}

// PassData — идентификация и оформление, общие для всех вариантов
type PassData struct {
	PassTypeIdentifier  string `json:"passTypeIdentifier"`
	SerialNumber        string `json:"serialNumber"`
	TeamIdentifier      string `json:"teamIdentifier"`
	OrganizationName    string `json:"organizationName"`
	Description         string `json:"description"`
	LogoText            string `json:"logoText,omitempty"`
	BackgroundColor     string `json:"backgroundColor,omitempty"`
	ForegroundColor     string `json:"foregroundColor,omitempty"`
	LabelColor          string `json:"labelColor,omitempty"`
	WebServiceURL       string `json:"webServiceURL,omitempty"`
	AuthenticationToken string `json:"authenticationToken,omitempty"`
}

// Layout — стиль и группы полей
type Layout struct {
	PassStyle       Style      `json:"passStyle,omitempty"`
	HeaderFields    []Field    `json:"headerFields,omitempty"`
	PrimaryFields   []Field    `json:"primaryFields,omitempty"`
	SecondaryFields []Field    `json:"secondaryFields,omitempty"`
	AuxiliaryFields []Field    `json:"auxiliaryFields,omitempty"`
	BackFields      []Field    `json:"backFields,omitempty"`
	Locations       []Location `json:"locations,omitempty"`
	RelevantDate    string     `json:"relevantDate,omitempty"`
	Barcodes        []Barcode  `json:"barcodes,omitempty"`
	MaxDistance     *float64   `json:"maxDistance,omitempty"`
	TransitType     string     `json:"transitType,omitempty"`
}

type PKPassData struct {
	PassData
	Layout
}

type InAppPaymentApplication struct {
	ApplicationIdentifier string `json:"applicationIdentifier"`
	MerchantIdentifier    string `json:"merchantIdentifier"`
}

type PaymentApplication struct {
	PaymentApplicationIdentifier string                    `json:"paymentApplicationIdentifier"`
	InAppPaymentApplications     []InAppPaymentApplication `json:"inAppPaymentApplications,omitempty"`
}

type SecureElementPassData struct {
	PassData
	Layout
	DevicePaymentApplications  []PaymentApplication `json:"devicePaymentApplications,omitempty"`
	PrimaryAccountIdentifier   string               `json:"primaryAccountIdentifier"`
	PrimaryAccountNumberSuffix string               `json:"primaryAccountNumberSuffix"`
	DeviceAccountIdentifier    string               `json:"deviceAccountIdentifier,omitempty"`
	DeviceAccountNumberSuffix  string               `json:"deviceAccountNumberSuffix,omitempty"`
	SuspendedReason            string               `json:"suspendedReason,omitempty"`
}

type StoredValuePassData struct {
	PassData
	Layout
	Balance            *float64 `json:"balance"`
	CurrencyCode       string   `json:"currencyCode"`
	BalanceUpdateDate  string   `json:"balanceUpdateDate,omitempty"`
	AutoTopUpAmount    *float64 `json:"autoTopUpAmount,omitempty"`
	AutoTopUpThreshold *float64 `json:"autoTopUpThreshold,omitempty"`
}

type PersonalInfo struct {
	GivenName   string `json:"givenName"`
	FamilyName  string `json:"familyName"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Portrait    string `json:"portrait,omitempty"` // base64
}

type DrivingPrivilege struct {
	VehicleClass   string   `json:"vehicleClass"`
	ExpirationDate string   `json:"expirationDate,omitempty"`
	Restrictions   []string `json:"restrictions,omitempty"`
}

type IdentityDocumentData struct {
	PassData
	Layout
	DocumentType      string             `json:"documentType"`
	IssuingAuthority  string             `json:"issuingAuthority"`
	DocumentNumber    string             `json:"documentNumber"`
	ExpirationDate    string             `json:"expirationDate,omitempty"`
	PersonalInfo      *PersonalInfo      `json:"personalInfo"`
	DrivingPrivileges []DrivingPrivilege `json:"drivingPrivileges,omitempty"`
}

type SharingConfiguration struct {
	MaxNumberOfShares      int      `json:"maxNumberOfShares"`
	RequiresAuthentication bool     `json:"requiresAuthentication"`
	AllowedSharingChannels []string `json:"allowedSharingChannels"`
}

type ShareablePassData struct {
	PassData
	Layout
	SharingConfiguration *SharingConfiguration `json:"sharingConfiguration"`
	ActivationState      string                `json:"activationState,omitempty"`
}

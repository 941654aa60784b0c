package pass

import (
	"encoding/json"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

const formatVersion = 1

// Группы полей внутри объекта стиля
const (
	GroupHeader    = "headerFields"
	GroupPrimary   = "primaryFields"
	GroupSecondary = "secondaryFields"
	GroupAuxiliary = "auxiliaryFields"
	GroupBack      = "backFields"
)

var styleGroups = []string{GroupHeader, GroupPrimary, GroupSecondary, GroupAuxiliary}

// Descriptor — канонический документ пропуска, передаваемый платформе.
// Отсутствующие необязательные поля в документ не попадают.
type Descriptor map[string]any

func newDescriptor(p PassData) Descriptor {
	d := Descriptor{
		"formatVersion":      formatVersion,
		"passTypeIdentifier": p.PassTypeIdentifier,
		"serialNumber":       p.SerialNumber,
		"teamIdentifier":     p.TeamIdentifier,
		"organizationName":   p.OrganizationName,
		"description":        p.Description,
	}
	d.setString("logoText", p.LogoText)
	d.setString("backgroundColor", p.BackgroundColor)
	d.setString("foregroundColor", p.ForegroundColor)
	d.setString("labelColor", p.LabelColor)
	d.setString("webServiceURL", p.WebServiceURL)
	d.setString("authenticationToken", p.AuthenticationToken)
	return d
}

func (d Descriptor) setString(key, v string) {
	if v != "" {
		d[key] = v
	}
}

// styleObject возвращает вложенный объект стиля, создавая его при необходимости
func (d Descriptor) styleObject(style Style) map[string]any {
	sub, ok := d[string(style)].(map[string]any)
	if !ok {
		sub = map[string]any{}
		d[string(style)] = sub
	}
	return sub
}

// mergeStyleGroup добавляет группу, не затирая уже размещённые
func (d Descriptor) mergeStyleGroup(style Style, group string, fields []Field) {
	if fields == nil {
		return
	}
	d.styleObject(style)[group] = fields
}

func (d Descriptor) applyLayout(l Layout) {
	if l.PassStyle != "" {
		d.styleObject(l.PassStyle)
		d.mergeStyleGroup(l.PassStyle, GroupHeader, l.HeaderFields)
		d.mergeStyleGroup(l.PassStyle, GroupPrimary, l.PrimaryFields)
		d.mergeStyleGroup(l.PassStyle, GroupSecondary, l.SecondaryFields)
		d.mergeStyleGroup(l.PassStyle, GroupAuxiliary, l.AuxiliaryFields)
		if l.TransitType != "" {
			d.styleObject(l.PassStyle)["transitType"] = l.TransitType
		}
	}
	if l.BackFields != nil {
		d[GroupBack] = l.BackFields
	}
	if l.Barcodes != nil {
		d["barcodes"] = l.Barcodes
	}
	if l.Locations != nil {
		d["locations"] = l.Locations
	}
	d.setString("relevantDate", l.RelevantDate)
	if l.MaxDistance != nil {
		d["maxDistance"] = *l.MaxDistance
	}
}

// Style возвращает стиль документа, если он задан
func (d Descriptor) Style() (Style, bool) {
	for _, s := range []Style{StyleBoardingPass, StyleCoupon, StyleEventTicket, StyleGeneric, StyleStoreCard} {
		if _, ok := d[string(s)]; ok {
			return s, true
		}
	}
	return "", false
}

// FieldGroups извлекает размещённые группы полей в исходном порядке
func (d Descriptor) FieldGroups() map[string][]Field {
	out := map[string][]Field{}
	if style, ok := d.Style(); ok {
		sub, _ := d[string(style)].(map[string]any)
		for _, g := range styleGroups {
			if fields, ok := sub[g].([]Field); ok {
				out[g] = fields
			}
		}
	}
	if fields, ok := d[GroupBack].([]Field); ok {
		out[GroupBack] = fields
	}
	return out
}

func (d Descriptor) SerialNumber() string {
	s, _ := d["serialNumber"].(string)
	return s
}

// JSON — сериализация для передачи платформе
func (d Descriptor) JSON() ([]byte, error) {
	return json.Marshal(d)
}

func BuildPKPass(in PKPassData) (Descriptor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	d := newDescriptor(in.PassData)
	d.applyLayout(in.Layout)
	return d, nil
}

func BuildSecureElementPass(in SecureElementPassData) (Descriptor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	d := newDescriptor(in.PassData)
	d.applyLayout(in.Layout)
	if in.DevicePaymentApplications != nil {
		d["devicePaymentApplications"] = in.DevicePaymentApplications
	}
	d["primaryAccountIdentifier"] = in.PrimaryAccountIdentifier
	d["primaryAccountNumberSuffix"] = in.PrimaryAccountNumberSuffix
	d.setString("deviceAccountIdentifier", in.DeviceAccountIdentifier)
	d.setString("deviceAccountNumberSuffix", in.DeviceAccountNumberSuffix)
	d.setString("suspendedReason", in.SuspendedReason)
	return d, nil
}

func BuildStoredValuePass(in StoredValuePassData) (Descriptor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	d := newDescriptor(in.PassData)
	d.applyLayout(in.Layout)
	d["balance"] = *in.Balance
	d["currencyCode"] = in.CurrencyCode
	d.setString("balanceUpdateDate", in.BalanceUpdateDate)
	if in.AutoTopUpAmount != nil {
		d["autoTopUpAmount"] = *in.AutoTopUpAmount
	}
	if in.AutoTopUpThreshold != nil {
		d["autoTopUpThreshold"] = *in.AutoTopUpThreshold
	}
	return d, nil
}

func BuildIdentityDocument(in IdentityDocumentData) (Descriptor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	d := newDescriptor(in.PassData)
	d.applyLayout(in.Layout)
	d["documentType"] = in.DocumentType
	d["issuingAuthority"] = in.IssuingAuthority
	d["documentNumber"] = in.DocumentNumber
	d.setString("expirationDate", in.ExpirationDate)

	info := map[string]any{
		"givenName":  in.PersonalInfo.GivenName,
		"familyName": in.PersonalInfo.FamilyName,
	}
	if in.PersonalInfo.DateOfBirth != "" {
		info["dateOfBirth"] = in.PersonalInfo.DateOfBirth
	}
	if in.PersonalInfo.Portrait != "" {
		info["portrait"] = in.PersonalInfo.Portrait
	}
	d["personalInfo"] = info
	if in.DrivingPrivileges != nil {
		d["drivingPrivileges"] = in.DrivingPrivileges
	}
	return d, nil
}

func BuildShareablePass(in ShareablePassData) (Descriptor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	d := newDescriptor(in.PassData)
	d.applyLayout(in.Layout)
	d["sharingConfiguration"] = *in.SharingConfiguration
	d.setString("activationState", in.ActivationState)
	return d, nil
}

// Build разбирает атрибуты варианта и строит документ
func Build(kind models.PassKind, attrs Attributes) (Descriptor, error) {
	switch kind {
	case models.KindPKPass:
		return decodeAndBuild(attrs, BuildPKPass)
	case models.KindSecureElement:
		return decodeAndBuild(attrs, BuildSecureElementPass)
	case models.KindStoredValue:
		return decodeAndBuild(attrs, BuildStoredValuePass)
	case models.KindIdentityDocument:
		return decodeAndBuild(attrs, BuildIdentityDocument)
	case models.KindShareable:
		return decodeAndBuild(attrs, BuildShareablePass)
	}
	return nil, apperrors.InvalidField("kind", string(kind))
}

func decodeAndBuild[T any](attrs Attributes, build func(T) (Descriptor, error)) (Descriptor, error) {
	in, err := Decode[T](attrs)
	if err != nil {
		return nil, err
	}
	return build(in)
}

// CheckPartial проверяет типы частичного ввода для update (без обязательных полей)
func CheckPartial(kind models.PassKind, attrs Attributes) error {
	var err error
	switch kind {
	case models.KindPKPass:
		_, err = Decode[PKPassData](attrs)
	case models.KindSecureElement:
		_, err = Decode[SecureElementPassData](attrs)
	case models.KindStoredValue:
		_, err = Decode[StoredValuePassData](attrs)
	case models.KindIdentityDocument:
		_, err = Decode[IdentityDocumentData](attrs)
	case models.KindShareable:
		_, err = Decode[ShareablePassData](attrs)
	default:
		err = apperrors.InvalidField("kind", string(kind))
	}
	return err
}

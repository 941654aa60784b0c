package pass

import (
	"strings"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
)

type requirement struct {
	field string
	value string
}

func firstMissing(reqs ...requirement) error {
	for _, r := range reqs {
		if strings.TrimSpace(r.value) == "" {
			return apperrors.MissingField(r.field)
		}
	}
	return nil
}

// Validate проверяет обязательные идентификационные поля
func (p PassData) Validate() error {
	return firstMissing(
		requirement{"passTypeIdentifier", p.PassTypeIdentifier},
		requirement{"serialNumber", p.SerialNumber},
		requirement{"teamIdentifier", p.TeamIdentifier},
		requirement{"organizationName", p.OrganizationName},
		requirement{"description", p.Description},
	)
}

func (l Layout) hasStyleGroups() bool {
	return l.HeaderFields != nil || l.PrimaryFields != nil || l.SecondaryFields != nil ||
		l.AuxiliaryFields != nil || l.TransitType != ""
}

// validate: стиль необязателен, но без него нельзя разместить группы стиля
func (l Layout) validate(styleRequired bool) error {
	if l.PassStyle == "" {
		if styleRequired || l.hasStyleGroups() {
			return apperrors.MissingField("passStyle")
		}
		return nil
	}
	if !l.PassStyle.Valid() {
		return apperrors.InvalidField("passStyle", string(l.PassStyle))
	}
	return nil
}

func (d PKPassData) Validate() error {
	if err := d.PassData.Validate(); err != nil {
		return err
	}
	return d.Layout.validate(true)
}

func (d SecureElementPassData) Validate() error {
	if err := d.PassData.Validate(); err != nil {
		return err
	}
	if err := d.Layout.validate(false); err != nil {
		return err
	}
	return firstMissing(
		requirement{"primaryAccountIdentifier", d.PrimaryAccountIdentifier},
		requirement{"primaryAccountNumberSuffix", d.PrimaryAccountNumberSuffix},
	)
}

func (d StoredValuePassData) Validate() error {
	if err := d.PassData.Validate(); err != nil {
		return err
	}
	if err := d.Layout.validate(false); err != nil {
		return err
	}
	if d.Balance == nil {
		return apperrors.MissingField("balance")
	}
	return firstMissing(requirement{"currencyCode", d.CurrencyCode})
}

func (d IdentityDocumentData) Validate() error {
	if err := d.PassData.Validate(); err != nil {
		return err
	}
	if err := d.Layout.validate(false); err != nil {
		return err
	}
	if err := firstMissing(
		requirement{"documentType", d.DocumentType},
		requirement{"issuingAuthority", d.IssuingAuthority},
		requirement{"documentNumber", d.DocumentNumber},
	); err != nil {
		return err
	}
	if d.PersonalInfo == nil {
		return apperrors.MissingField("personalInfo")
	}
	return firstMissing(
		requirement{"personalInfo.givenName", d.PersonalInfo.GivenName},
		requirement{"personalInfo.familyName", d.PersonalInfo.FamilyName},
	)
}

func (d ShareablePassData) Validate() error {
	if err := d.PassData.Validate(); err != nil {
		return err
	}
	if err := d.Layout.validate(false); err != nil {
		return err
	}
	if d.SharingConfiguration == nil {
		return apperrors.MissingField("sharingConfiguration")
	}
	return nil
}

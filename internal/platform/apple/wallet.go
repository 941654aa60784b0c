// Package apple — фасад PassKit: операции кошелька для платформы ios.
package apple

import (
	"context"
	"errors"

	"github.com/vbncursed/vkr/wallet-service/internal/capability"
	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/pass"
	"github.com/vbncursed/vkr/wallet-service/internal/result"
)

// Library — хранилище пропусков устройства (аналог PKPassLibrary)
type Library interface {
	Available(ctx context.Context) bool
	CanAddPasses(ctx context.Context) bool
	AddPass(ctx context.Context, p models.LibraryPass) error
	Passes(ctx context.Context) ([]models.LibraryPass, error)
	// FindPass возвращает apperrors.ErrNotFound, если пропуска нет
	FindPass(ctx context.Context, serialNumber string) (models.LibraryPass, error)
}

const (
	msgPassNotFound      = "Pass not found"
	msgRemovalByUser     = "Pass removal must be done by the user through the Wallet app"
	msgCannotAddPasses   = "Cannot add passes to library"
	msgStoredValueCreate = "PKStoredValuePass creation not yet implemented"
	msgIdentityCreate    = "PKIdentityDocument requires special entitlements and is not available for general use"
	msgShareableCreate   = "PKShareablePass creation not yet implemented"
	msgBalanceUpdate     = "Balance update not yet implemented"
	msgSharing           = "Pass sharing not yet implemented"
	msgPresentation      = "Pass presentation not yet implemented"
	msgNFCCredential     = "NFC Secure Element credential creation not yet implemented"
	msgNFCRequires       = "NFC & SE Platform requires iOS 18.1 or later"
)

var updateMessages = map[models.PassKind]string{
	models.KindPKPass:           "Pass update not yet implemented",
	models.KindSecureElement:    "Secure element pass update not yet implemented",
	models.KindStoredValue:      "Stored value pass update not yet implemented",
	models.KindIdentityDocument: "Identity document update not yet implemented",
	models.KindShareable:        "Shareable pass update not yet implemented",
}

// Wallet — фасад платформы ios
type Wallet struct {
	lib Library
}

func New(lib Library) *Wallet { return &Wallet{lib: lib} }

func (w *Wallet) Platform() models.Platform { return models.PlatformIOS }

func (w *Wallet) IsWalletAvailable(ctx context.Context, dev capability.Device) models.WalletAvailability {
	return capability.Probe(ctx, dev, w.lib)
}

func (w *Wallet) CanAddPasses(ctx context.Context, dev capability.Device) bool {
	return capability.CanAdd(ctx, dev, w.lib)
}

// gate проверяет, что вариант доступен на версии iOS устройства
func gate(dev capability.Device, kind models.PassKind) error {
	if capability.Supports(dev, kind) {
		return nil
	}
	return result.RequiresIOS(string(kind), capability.MinVersion(kind))
}

// AddPass строит документ и добавляет его в хранилище.
// Для вариантов без поддержки добавления валидация всё равно выполняется.
func (w *Wallet) AddPass(ctx context.Context, dev capability.Device, kind models.PassKind, attrs pass.Attributes) (string, error) {
	if err := gate(dev, kind); err != nil {
		return "", err
	}
	d, err := pass.Build(kind, attrs)
	if err != nil {
		return "", err
	}
	switch kind {
	case models.KindStoredValue:
		return "", apperrors.NotYetImplemented(msgStoredValueCreate)
	case models.KindIdentityDocument:
		return "", apperrors.Unsupported(msgIdentityCreate)
	case models.KindShareable:
		return "", apperrors.NotYetImplemented(msgShareableCreate)
	}

	if !w.lib.CanAddPasses(ctx) {
		return "", apperrors.PlatformCallf(msgCannotAddPasses)
	}
	body, err := d.JSON()
	if err != nil {
		return "", apperrors.PlatformCall(err)
	}
	rec := models.LibraryPass{
		SerialNumber:       d.SerialNumber(),
		PassTypeIdentifier: stringField(d, "passTypeIdentifier"),
		Kind:               kind,
		OrganizationName:   stringField(d, "organizationName"),
		Description:        stringField(d, "description"),
		WebServiceURL:      stringField(d, "webServiceURL"),
		Descriptor:         body,
	}
	if err := w.lib.AddPass(ctx, rec); err != nil {
		return "", apperrors.PlatformCall(err)
	}
	return rec.SerialNumber, nil
}

func stringField(d pass.Descriptor, key string) string {
	s, _ := d[key].(string)
	return s
}

// UpdatePass проверяет частичный ввод; обновление в PassKit не поддерживается
func (w *Wallet) UpdatePass(_ context.Context, dev capability.Device, kind models.PassKind, _ string, attrs pass.Attributes) (string, error) {
	if err := gate(dev, kind); err != nil {
		return "", err
	}
	if err := pass.CheckPartial(kind, attrs); err != nil {
		return "", err
	}
	return "", apperrors.NotYetImplemented(updateMessages[kind])
}

// RemovePass: удалить пропуск может только пользователь в приложении Wallet
func (w *Wallet) RemovePass(ctx context.Context, dev capability.Device, kind models.PassKind, id string) (string, error) {
	if err := gate(dev, kind); err != nil {
		return "", err
	}
	if _, err := w.find(ctx, id); err != nil {
		return "", err
	}
	return "", apperrors.Unsupported(msgRemovalByUser)
}

func (w *Wallet) UpdateStoredValueBalance(_ context.Context, dev capability.Device, _ string, _ float64) (string, error) {
	if err := gate(dev, models.KindStoredValue); err != nil {
		return "", err
	}
	return "", apperrors.NotYetImplemented(msgBalanceUpdate)
}

func (w *Wallet) SharePass(_ context.Context, dev capability.Device, _ string, _ []string) (string, error) {
	if err := gate(dev, models.KindShareable); err != nil {
		return "", err
	}
	return "", apperrors.NotYetImplemented(msgSharing)
}

// ListPasses — все пропуска хранилища
func (w *Wallet) ListPasses(ctx context.Context, _ capability.Device) (models.PassList, error) {
	rows, err := w.lib.Passes(ctx)
	if err != nil {
		return models.PassList{}, apperrors.PlatformCall(err)
	}
	out := models.PassList{Passes: make([]models.PassSummary, 0, len(rows))}
	for _, p := range rows {
		out.Passes = append(out.Passes, models.PassSummary{
			ID:          p.SerialNumber,
			Type:        typeDescription(p.Kind),
			Description: p.Description,
		})
	}
	return out, nil
}

// typeDescription: PassKit различает только secure element и остальные пропуска
func typeDescription(kind models.PassKind) string {
	if kind == models.KindSecureElement {
		return string(models.KindSecureElement)
	}
	return string(models.KindPKPass)
}

func (w *Wallet) GetPass(ctx context.Context, _ capability.Device, id string) (models.PassLookup, error) {
	p, err := w.find(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.PassLookup{Success: false, Error: err.Error()}, nil
	}
	if err != nil {
		return models.PassLookup{}, err
	}
	return models.PassLookup{
		Pass: map[string]any{
			"passTypeIdentifier": p.PassTypeIdentifier,
			"serialNumber":       p.SerialNumber,
			"organizationName":   p.OrganizationName,
			"description":        p.Description,
			"passURL":            p.WebServiceURL,
			"isRemotePass":       false,
		},
		Success: true,
	}, nil
}

func (w *Wallet) PresentPass(context.Context, capability.Device, string) (string, error) {
	return "", apperrors.NotYetImplemented(msgPresentation)
}

func (w *Wallet) find(ctx context.Context, id string) (models.LibraryPass, error) {
	p, err := w.lib.FindPass(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.LibraryPass{}, apperrors.NotFound(msgPassNotFound)
	}
	if err != nil {
		return models.LibraryPass{}, apperrors.PlatformCall(err)
	}
	return p, nil
}

func (w *Wallet) CreateGoogleClass(context.Context, capability.Device, models.GoogleWalletClass) (string, error) {
	return "", result.NotOnIOS()
}

func (w *Wallet) CreateGoogleObject(context.Context, capability.Device, models.GoogleWalletObject) (string, error) {
	return "", result.NotOnIOS()
}

func (w *Wallet) AddToGoogleWallet(context.Context, capability.Device, models.GoogleWalletClass, models.GoogleWalletObject) (string, string, error) {
	return "", "", result.NotOnIOS()
}

func (w *Wallet) UpdateGoogleObject(context.Context, capability.Device, string, map[string]any) (string, error) {
	return "", result.NotOnIOS()
}

func (w *Wallet) RemoveGoogleObject(context.Context, capability.Device, string) (string, error) {
	return "", result.NotOnIOS()
}

func (w *Wallet) IsNFCSEPlatformAvailable(_ context.Context, dev capability.Device) bool {
	return capability.NFCSEAvailable(dev)
}

func (w *Wallet) CreateNFCCredential(_ context.Context, dev capability.Device, _ map[string]any) (string, error) {
	if !capability.NFCSEAvailable(dev) {
		return "", apperrors.Unsupported(msgNFCRequires)
	}
	return "", apperrors.NotYetImplemented(msgNFCCredential)
}

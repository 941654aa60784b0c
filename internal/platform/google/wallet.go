// Package google — фасад Google Wallet: операции кошелька для платформы android.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/vbncursed/vkr/wallet-service/internal/capability"
	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/pass"
	"github.com/vbncursed/vkr/wallet-service/internal/result"
)

// ObjectEntry — объект вместе с именем эмитента его класса
type ObjectEntry struct {
	Object     models.GoogleWalletObject
	IssuerName string
}

// Client — клиент Google Wallet (локальный реестр или REST API).
// Отсутствующий объект — apperrors.ErrNotFound.
type Client interface {
	InsertClass(ctx context.Context, c models.GoogleWalletClass) error
	InsertObject(ctx context.Context, o models.GoogleWalletObject) error
	GetObject(ctx context.Context, id string) (models.GoogleWalletObject, error)
	PatchObject(ctx context.Context, id string, patch map[string]any) (models.GoogleWalletObject, error)
	ExpireObject(ctx context.Context, id string) error
	ListObjects(ctx context.Context) ([]ObjectEntry, error)
}

const (
	msgPassNotFound  = "Pass not found"
	msgNFCCredential = "NFC Secure Element credential creation not yet implemented on Android"
	genericPassType  = "Generic"
)

// Wallet — фасад платформы android
type Wallet struct {
	client Client
	links  *SaveLinkSigner
}

// New: links может быть nil, тогда ссылки сохранения не подписываются
func New(client Client, links *SaveLinkSigner) *Wallet {
	return &Wallet{client: client, links: links}
}

func (w *Wallet) Platform() models.Platform { return models.PlatformAndroid }

func (w *Wallet) IsWalletAvailable(ctx context.Context, dev capability.Device) models.WalletAvailability {
	return capability.Probe(ctx, dev, nil)
}

func (w *Wallet) CanAddPasses(ctx context.Context, dev capability.Device) bool {
	return capability.CanAdd(ctx, dev, nil)
}

func (w *Wallet) AddPass(_ context.Context, _ capability.Device, kind models.PassKind, _ pass.Attributes) (string, error) {
	return "", result.NotOnAndroid(kind)
}

func (w *Wallet) UpdatePass(_ context.Context, _ capability.Device, kind models.PassKind, _ string, _ pass.Attributes) (string, error) {
	return "", result.NotOnAndroid(kind)
}

func (w *Wallet) RemovePass(_ context.Context, _ capability.Device, kind models.PassKind, _ string) (string, error) {
	return "", result.NotOnAndroid(kind)
}

func (w *Wallet) UpdateStoredValueBalance(context.Context, capability.Device, string, float64) (string, error) {
	return "", result.NotOnAndroid(models.KindStoredValue)
}

func (w *Wallet) SharePass(context.Context, capability.Device, string, []string) (string, error) {
	return "", result.NotOnAndroid(models.KindShareable)
}

// CreateGoogleClass регистрирует класс пропуска
func (w *Wallet) CreateGoogleClass(ctx context.Context, _ capability.Device, c models.GoogleWalletClass) (string, error) {
	if err := validateClass(c); err != nil {
		return "", err
	}
	if err := w.client.InsertClass(ctx, c); err != nil {
		return "", apperrors.PlatformCall(err)
	}
	return c.ID, nil
}

// CreateGoogleObject создаёт объект пропуска; состояние по умолчанию ACTIVE
func (w *Wallet) CreateGoogleObject(ctx context.Context, _ capability.Device, o models.GoogleWalletObject) (string, error) {
	o, err := normalizeObject(o)
	if err != nil {
		return "", err
	}
	if err := w.client.InsertObject(ctx, o); err != nil {
		return "", apperrors.PlatformCall(err)
	}
	return o.ID, nil
}

// AddToGoogleWallet: класс -> объект -> ссылка сохранения. Первый сбой прерывает цепочку.
// Возвращает id объекта и ссылку сохранения.
func (w *Wallet) AddToGoogleWallet(ctx context.Context, dev capability.Device, c models.GoogleWalletClass, o models.GoogleWalletObject) (string, string, error) {
	if _, err := w.CreateGoogleClass(ctx, dev, c); err != nil {
		return o.ID, "", err
	}
	objectID, err := w.CreateGoogleObject(ctx, dev, o)
	if err != nil {
		return o.ID, "", err
	}
	saveURL, err := w.links.SaveURL(o.ClassID, objectID)
	if err != nil {
		return objectID, "", apperrors.PlatformCall(err)
	}
	return objectID, saveURL, nil
}

// UpdateGoogleObject применяет частичное обновление; id и classId менять нельзя.
// Patch сначала накладывается на текущий объект, клиент получает только проверенные данные.
func (w *Wallet) UpdateGoogleObject(ctx context.Context, _ capability.Device, id string, patch map[string]any) (string, error) {
	current, err := w.client.GetObject(ctx, id)
	if err != nil {
		return "", notFoundOr(err)
	}
	if _, err := ApplyPatch(current, patch); err != nil {
		return "", err
	}
	if _, err := w.client.PatchObject(ctx, id, patch); err != nil {
		return "", notFoundOr(err)
	}
	return id, nil
}

// RemoveGoogleObject переводит объект в EXPIRED
func (w *Wallet) RemoveGoogleObject(ctx context.Context, _ capability.Device, id string) (string, error) {
	if err := w.client.ExpireObject(ctx, id); err != nil {
		return "", notFoundOr(err)
	}
	return id, nil
}

func (w *Wallet) ListPasses(ctx context.Context, _ capability.Device) (models.PassList, error) {
	entries, err := w.client.ListObjects(ctx)
	if err != nil {
		return models.PassList{}, apperrors.PlatformCall(err)
	}
	out := models.PassList{Passes: make([]models.PassSummary, 0, len(entries))}
	for _, e := range entries {
		out.Passes = append(out.Passes, models.PassSummary{
			ID:          e.Object.ID,
			Type:        genericPassType,
			Description: e.IssuerName,
		})
	}
	return out, nil
}

func (w *Wallet) GetPass(ctx context.Context, _ capability.Device, id string) (models.PassLookup, error) {
	o, err := w.client.GetObject(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.PassLookup{Success: false, Error: msgPassNotFound}, nil
	}
	if err != nil {
		return models.PassLookup{}, apperrors.PlatformCall(err)
	}
	body, err := json.Marshal(o)
	if err != nil {
		return models.PassLookup{}, apperrors.PlatformCall(err)
	}
	view := map[string]any{}
	if err := json.Unmarshal(body, &view); err != nil {
		return models.PassLookup{}, apperrors.PlatformCall(err)
	}
	view["type"] = genericPassType
	return models.PassLookup{Pass: view, Success: true}, nil
}

// PresentPass: объект существует — приложение Wallet может его открыть
func (w *Wallet) PresentPass(ctx context.Context, _ capability.Device, id string) (string, error) {
	if _, err := w.client.GetObject(ctx, id); err != nil {
		return "", notFoundOr(err)
	}
	return id, nil
}

func (w *Wallet) IsNFCSEPlatformAvailable(context.Context, capability.Device) bool { return false }

func (w *Wallet) CreateNFCCredential(context.Context, capability.Device, map[string]any) (string, error) {
	return "", apperrors.NotYetImplemented(msgNFCCredential)
}

func validateClass(c models.GoogleWalletClass) error {
	if strings.TrimSpace(c.ID) == "" {
		return apperrors.MissingField("id")
	}
	if strings.TrimSpace(c.IssuerName) == "" {
		return apperrors.MissingField("issuerName")
	}
	return nil
}

func normalizeObject(o models.GoogleWalletObject) (models.GoogleWalletObject, error) {
	if strings.TrimSpace(o.ID) == "" {
		return o, apperrors.MissingField("id")
	}
	if strings.TrimSpace(o.ClassID) == "" {
		return o, apperrors.MissingField("classId")
	}
	if o.State == "" {
		o.State = models.StateActive
	}
	if !o.State.Valid() {
		return o, apperrors.InvalidField("state", string(o.State))
	}
	return o, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NotFound(msgPassNotFound)
	}
	return apperrors.PlatformCall(err)
}

package service

import (
	"context"
	"time"

	"github.com/vbncursed/vkr/wallet-service/internal/capability"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/pass"
)

// Facade — все точки входа кошелька для одной платформы.
// Операции, недоступные на платформе, возвращают UnsupportedOnPlatform.
type Facade interface {
	Platform() models.Platform

	IsWalletAvailable(ctx context.Context, dev capability.Device) models.WalletAvailability
	CanAddPasses(ctx context.Context, dev capability.Device) bool

	AddPass(ctx context.Context, dev capability.Device, kind models.PassKind, attrs pass.Attributes) (string, error)
	UpdatePass(ctx context.Context, dev capability.Device, kind models.PassKind, id string, attrs pass.Attributes) (string, error)
	RemovePass(ctx context.Context, dev capability.Device, kind models.PassKind, id string) (string, error)
	UpdateStoredValueBalance(ctx context.Context, dev capability.Device, id string, balance float64) (string, error)
	SharePass(ctx context.Context, dev capability.Device, id string, recipients []string) (string, error)

	ListPasses(ctx context.Context, dev capability.Device) (models.PassList, error)
	GetPass(ctx context.Context, dev capability.Device, id string) (models.PassLookup, error)
	PresentPass(ctx context.Context, dev capability.Device, id string) (string, error)

	CreateGoogleClass(ctx context.Context, dev capability.Device, c models.GoogleWalletClass) (string, error)
	CreateGoogleObject(ctx context.Context, dev capability.Device, o models.GoogleWalletObject) (string, error)
	// AddToGoogleWallet возвращает id объекта и ссылку сохранения
	AddToGoogleWallet(ctx context.Context, dev capability.Device, c models.GoogleWalletClass, o models.GoogleWalletObject) (string, string, error)
	UpdateGoogleObject(ctx context.Context, dev capability.Device, id string, patch map[string]any) (string, error)
	RemoveGoogleObject(ctx context.Context, dev capability.Device, id string) (string, error)

	IsNFCSEPlatformAvailable(ctx context.Context, dev capability.Device) bool
	CreateNFCCredential(ctx context.Context, dev capability.Device, data map[string]any) (string, error)
}

// Recorder — учёт исходов операций (метрики)
type Recorder interface {
	ObserveOperation(platform, operation, outcome string, elapsed time.Duration)
}

// Имена операций для метрик и трассировки
const (
	OpIsWalletAvailable        = "isWalletAvailable"
	OpCanAddPasses             = "canAddPasses"
	OpAddPass                  = "addPass"
	OpUpdatePass               = "updatePass"
	OpRemovePass               = "removePass"
	OpUpdateStoredValueBalance = "updateStoredValueBalance"
	OpSharePass                = "sharePass"
	OpGetAllPasses             = "getAllPasses"
	OpGetPassByID              = "getPassById"
	OpPresentPass              = "presentPass"
	OpCreateGoogleClass        = "createGoogleWalletClass"
	OpCreateGoogleObject       = "createGoogleWalletObject"
	OpAddToGoogleWallet        = "addToGoogleWallet"
	OpUpdateGoogleObject       = "updateGoogleWalletObject"
	OpRemoveFromGoogleWallet   = "removeFromGoogleWallet"
	OpIsNFCSEPlatformAvailable = "isNFCSEPlatformAvailable"
	OpCreateNFCCredential      = "createNFCSecureElementCredential"
)

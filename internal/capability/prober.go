package capability

import (
	"context"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// StoreState — состояние хранилища пропусков платформы
type StoreState interface {
	Available(ctx context.Context) bool
	CanAddPasses(ctx context.Context) bool
}

// Probe — isWalletAvailable для устройства.
// iOS: доступность и запись определяет хранилище пропусков;
// Android: всё определяется установленным приложением Google Wallet.
func Probe(ctx context.Context, dev Device, store StoreState) models.WalletAvailability {
	out := models.WalletAvailability{
		Platform:           dev.Platform,
		SupportedPassTypes: SupportedPassTypes(dev),
	}
	switch dev.Platform {
	case models.PlatformIOS:
		if store != nil {
			out.IsAvailable = store.Available(ctx)
			out.CanAddPasses = out.IsAvailable && store.CanAddPasses(ctx)
		}
	case models.PlatformAndroid:
		out.IsAvailable = dev.WalletInstalled
		out.CanAddPasses = dev.WalletInstalled
	}
	return out
}

// CanAdd — короткий вариант Probe
func CanAdd(ctx context.Context, dev Device, store StoreState) bool {
	return Probe(ctx, dev, store).CanAddPasses
}

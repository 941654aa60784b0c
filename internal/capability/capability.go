// Package capability — таблица возможностей платформ и определение доступности кошелька.
package capability

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// GoogleWalletPackage — пакет приложения Google Wallet на Android
const GoogleWalletPackage = "com.google.android.apps.walletnfcrel"

// Device — состояние устройства, от имени которого пришёл вызов
type Device struct {
	Platform        models.Platform
	OSVersion       string
	WalletInstalled bool
}

type gate struct {
	minVersion string
	kind       models.PassKind
}

// iosGates — с какой версии iOS доступен вариант; PKPass доступен всегда
var iosGates = []gate{
	{"", models.KindPKPass},
	{"13.0", models.KindSecureElement},
	{"14.0", models.KindStoredValue},
	{"15.0", models.KindIdentityDocument},
	{"16.0", models.KindShareable},
}

// NFCSEMinVersion — минимальная iOS для NFC & SE Platform
const NFCSEMinVersion = "18.1"

var androidPassTypes = []string{
	"Generic",
	"EventTicket",
	"BoardingPass",
	"GiftCard",
	"LoyaltyCard",
	"Offer",
	"TransitPass",
}

// canonical приводит "16", "16.2", "v16.2.1" к виду semver "v16.2.1"
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// AtLeast сообщает, что версия ОС не ниже min. Непарсируемая версия не проходит ни один порог.
func AtLeast(osVersion, min string) bool {
	if min == "" {
		return true
	}
	have := canonical(osVersion)
	if have == "" {
		return false
	}
	return semver.Compare(have, canonical(min)) >= 0
}

// MinVersion — порог iOS для варианта
func MinVersion(kind models.PassKind) string {
	for _, g := range iosGates {
		if g.kind == kind {
			return g.minVersion
		}
	}
	return ""
}

// SupportedPassTypes — упорядоченный список вариантов, доступных устройству
func SupportedPassTypes(dev Device) []string {
	switch dev.Platform {
	case models.PlatformIOS:
		out := make([]string, 0, len(iosGates))
		for _, g := range iosGates {
			if AtLeast(dev.OSVersion, g.minVersion) {
				out = append(out, string(g.kind))
			}
		}
		return out
	case models.PlatformAndroid:
		if !dev.WalletInstalled {
			return []string{}
		}
		out := make([]string, len(androidPassTypes))
		copy(out, androidPassTypes)
		return out
	}
	return []string{}
}

// Supports сообщает, доступен ли PassKit-вариант на устройстве
func Supports(dev Device, kind models.PassKind) bool {
	if dev.Platform != models.PlatformIOS {
		return false
	}
	return AtLeast(dev.OSVersion, MinVersion(kind))
}

// NFCSEAvailable — доступна ли NFC & SE Platform
func NFCSEAvailable(dev Device) bool {
	return dev.Platform == models.PlatformIOS && AtLeast(dev.OSVersion, NFCSEMinVersion)
}

package http

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/capability"
	"github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

// Заголовки, описывающие устройство вызывающего
const (
	HeaderDeviceOSVersion       = "X-Device-OS-Version"
	HeaderDeviceWalletInstalled = "X-Device-Wallet-Installed"
)

const deviceKey = "wallet.device"

// DeviceContext разбирает :platform и заголовки устройства; значения по умолчанию — из конфига
func DeviceContext(defaults config.WalletConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := models.ParsePlatform(c.Param("platform"))
			if !ok {
				return writeError(c, wsvc.ErrUnknownPlatform)
			}
			dev := capability.Device{Platform: p, WalletInstalled: true}
			switch p {
			case models.PlatformIOS:
				dev.OSVersion = defaults.DefaultIOSVersion
			case models.PlatformAndroid:
				dev.WalletInstalled = defaults.AndroidWalletInstalled
			}

			h := c.Request().Header
			if v := strings.TrimSpace(h.Get(HeaderDeviceOSVersion)); v != "" {
				dev.OSVersion = v
			}
			if v := strings.TrimSpace(h.Get(HeaderDeviceWalletInstalled)); v != "" {
				installed, err := strconv.ParseBool(v)
				if err != nil {
					return writeError(c, errDeviceHeader)
				}
				dev.WalletInstalled = installed
			}
			c.Set(deviceKey, dev)
			return next(c)
		}
	}
}

func device(c echo.Context) capability.Device {
	dev, _ := c.Get(deviceKey).(capability.Device)
	return dev
}

func passKind(c echo.Context) (models.PassKind, error) {
	k, ok := models.ParsePassKind(c.Param("kind"))
	if !ok {
		return "", wsvc.ErrUnknownKind
	}
	return k, nil
}

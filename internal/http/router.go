package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/metrics"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

func Router(svc *wsvc.Service, pool poolPinger, m *metrics.Metrics, cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(requestLogger())
	e.Use(m.Middleware())
	e.Binder = StrictJSONBinder{}
	e.HTTPErrorHandler = DefaultHTTPErrorHandler

	// Swagger UI (включается флагом ENABLE_SWAGGER=1)
	if cfg.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	v1 := e.Group("/api/v1")
	v1.GET("/healthz", Healthz)
	v1.GET("/readyz", Readyz(pool))

	// Legacy module surface
	v1.GET("/hello", Hello)
	v1.GET("/constants", Constants)
	v1.POST("/value", SetValue(svc))

	v1.GET("/view", View)
	v1.POST("/view/load", ViewLoaded(svc))
	v1.GET("/events", Events(svc.Events(), 0))

	p := v1.Group("/:platform", DeviceContext(cfg.Wallet))
	p.GET("/availability", IsWalletAvailable(svc))
	p.GET("/can-add-passes", CanAddPasses(svc))

	p.POST("/passes/:kind", AddPass(svc))
	p.PATCH("/passes/:kind/:id", UpdatePass(svc))
	p.DELETE("/passes/:kind/:id", RemovePass(svc))
	p.POST("/passes/:kind/:id/balance", UpdateBalance(svc))
	p.POST("/passes/:kind/:id/share", SharePass(svc))

	p.GET("/library", ListPasses(svc))
	p.GET("/library/:id", GetPass(svc))
	p.POST("/library/:id/present", PresentPass(svc))

	p.POST("/google/classes", CreateGoogleClass(svc))
	p.POST("/google/objects", CreateGoogleObject(svc))
	p.POST("/google/save", AddToGoogleWallet(svc))
	p.PATCH("/google/objects/:id", UpdateGoogleObject(svc))
	p.DELETE("/google/objects/:id", RemoveGoogleObject(svc))

	p.GET("/nfc-se", IsNFCSEAvailable(svc))
	p.POST("/nfc-se/credentials", CreateNFCCredential(svc))

	return e
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"route", v.RoutePath,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				slog.Warn("request", append(attrs, "err", v.Error)...)
				return nil
			}
			slog.Debug("request", attrs...)
			return nil
		},
	})
}

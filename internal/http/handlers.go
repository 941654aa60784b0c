package http

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

// Greeting — ответ устаревшего hello
const Greeting = "Hello world! 👋"

type HealthzResponse struct {
	Status string `json:"status"`
}
type ReadyzResponse struct {
	Status string `json:"status"`
}

// Healthz liveness.
// @Summary     Liveness probe
// @Tags        meta
// @Produce     json
// @Success     200 {object} HealthzResponse
// @Router      /healthz [get]
func Healthz(c echo.Context) error {
	return writeJSON(c, http.StatusOK, HealthzResponse{Status: "ok"})
}

type poolPinger interface {
	Ping(ctx context.Context) error
}

// Readyz readiness (DB ping).
// @Summary     Readiness probe
// @Tags        meta
// @Produce     json
// @Success     200 {object} ReadyzResponse
// @Failure     503 {object} APIError
// @Router      /readyz [get]
func Readyz(pool poolPinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			return writeJSON(c, http.StatusServiceUnavailable, APIError{Code: "db_not_ready", Message: "db not ready"})
		}
		return writeJSON(c, http.StatusOK, ReadyzResponse{Status: "ready"})
	}
}

// Hello — устаревшее приветствие
// @Summary     Hello
// @Tags        legacy
// @Produce     plain
// @Success     200 {string} string
// @Router      /hello [get]
func Hello(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.String(http.StatusOK, Greeting)
}

// Constants — константы устаревшего модуля
// @Summary     Module constants
// @Tags        legacy
// @Produce     json
// @Success     200 {object} dto.ConstantsResponse
// @Router      /constants [get]
func Constants(c echo.Context) error {
	return writeJSON(c, http.StatusOK, dto.Constants())
}

// SetValue — setValueAsync, рассылает onChange
// @Summary     Set value (emits onChange)
// @Tags        legacy
// @Accept      json
// @Produce     json
// @Param       request body dto.ValueRequest true "Value"
// @Success     200 {object} dto.StatusResponse
// @Failure     400 {object} APIError
// @Router      /value [post]
func SetValue(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.ValueRequest
		if err := c.Bind(&req); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		svc.SetValue(req.Value)
		return writeJSON(c, http.StatusOK, dto.StatusResponse{Status: "ok"})
	}
}

// StrictJSONBinder запрещает неизвестные поля
type StrictJSONBinder struct{}

func (StrictJSONBinder) Bind(i interface{}, c echo.Context) error {
	if ct := c.Request().Header.Get(echo.HeaderContentType); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != echo.MIMEApplicationJSON {
			return echo.ErrUnsupportedMediaType
		}
	}
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		return err
	}
	return nil
}

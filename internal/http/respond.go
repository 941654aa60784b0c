package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

var errMalformed = APIError{Code: "invalid_request", Message: "malformed"}

func writeJSON(c echo.Context, status int, v any) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(status, v)
}

func writeError(c echo.Context, err error) error {
	status, body := MapError(err)
	return writeJSON(c, status, body)
}

// bindOptional — как c.Bind, но пустое тело допустимо
func bindOptional(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func DefaultHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = writeJSON(c, he.Code, map[string]any{
			"code":    http.StatusText(he.Code),
			"message": he.Message,
		})
		return
	}
	_ = writeError(c, err)
}

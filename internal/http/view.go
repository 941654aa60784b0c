package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
	"github.com/vbncursed/vkr/wallet-service/internal/webview"
)

// View — страница с URL во фрейме
// @Summary     Web view
// @Tags        view
// @Produce     html
// @Param       url query string true "Absolute http(s) URL"
// @Success     200 {string} string
// @Failure     400 {object} APIError
// @Router      /view [get]
func View(c echo.Context) error {
	page, err := webview.Render(c.QueryParam("url"))
	if err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.HTMLBlob(http.StatusOK, page)
}

// ViewLoaded — onLoad от страницы
// @Summary     Web view loaded (emits onLoad)
// @Tags        view
// @Accept      json
// @Produce     json
// @Param       request body dto.ViewLoadRequest true "Loaded URL"
// @Success     200 {object} dto.StatusResponse
// @Failure     400 {object} APIError
// @Router      /view/load [post]
func ViewLoaded(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.ViewLoadRequest
		if err := c.Bind(&req); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		if err := req.Validate(); err != nil {
			return writeError(c, err)
		}
		target, err := webview.Validate(req.URL)
		if err != nil {
			return writeError(c, err)
		}
		svc.ViewLoaded(target)
		return writeJSON(c, http.StatusOK, dto.StatusResponse{Status: "ok"})
	}
}

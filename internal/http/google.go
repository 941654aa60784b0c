package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

// CreateGoogleClass — createGoogleWalletClass
// @Summary     Create Google Wallet class
// @Tags        google
// @Accept      json
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       request  body models.GoogleWalletClass true "Class"
// @Success     200 {object} models.OperationResult
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /{platform}/google/classes [post]
func CreateGoogleClass(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.GoogleWalletClass
		if err := c.Bind(&req); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		res, err := svc.CreateGoogleClass(c.Request().Context(), device(c), req)
		return writeResult(c, res, err)
	}
}

// CreateGoogleObject — createGoogleWalletObject
// @Summary     Create Google Wallet object
// @Tags        google
// @Accept      json
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       request  body models.GoogleWalletObject true "Object"
// @Success     200 {object} models.OperationResult
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /{platform}/google/objects [post]
func CreateGoogleObject(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.GoogleWalletObject
		if err := c.Bind(&req); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		res, err := svc.CreateGoogleObject(c.Request().Context(), device(c), req)
		return writeResult(c, res, err)
	}
}

// AddToGoogleWallet — класс, затем объект, затем ссылка сохранения
// @Summary     Add to Google Wallet
// @Tags        google
// @Accept      json
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       request  body dto.GoogleSaveRequest true "Class and object"
// @Success     200 {object} models.OperationResult
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /{platform}/google/save [post]
func AddToGoogleWallet(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.GoogleSaveRequest
		if err := c.Bind(&req); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		res, err := svc.AddToGoogleWallet(c.Request().Context(), device(c), req.Class, req.Object)
		return writeResult(c, res, err)
	}
}

// UpdateGoogleObject — updateGoogleWalletObject
// @Summary     Patch Google Wallet object
// @Tags        google
// @Accept      json
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       id       path string true "Object id"
// @Param       request  body object true "Patch"
// @Success     200 {object} models.OperationResult
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /{platform}/google/objects/{id} [patch]
func UpdateGoogleObject(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch map[string]any
		// null binds to a nil map
		if err := c.Bind(&patch); err != nil || patch == nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		res, err := svc.UpdateGoogleObject(c.Request().Context(), device(c), strings.TrimSpace(c.Param("id")), patch)
		return writeResult(c, res, err)
	}
}

// RemoveGoogleObject — removeFromGoogleWallet
// @Summary     Expire Google Wallet object
// @Tags        google
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       id       path string true "Object id"
// @Success     200 {object} models.OperationResult
// @Failure     404 {object} APIError
// @Router      /{platform}/google/objects/{id} [delete]
func RemoveGoogleObject(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := svc.RemoveGoogleObject(c.Request().Context(), device(c), strings.TrimSpace(c.Param("id")))
		return writeResult(c, res, err)
	}
}

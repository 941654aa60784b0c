package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/pass"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

func writeResult(c echo.Context, res models.OperationResult, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON(c, http.StatusOK, res)
}

// IsWalletAvailable — доступность кошелька на устройстве
// @Summary     Wallet availability
// @Tags        wallet
// @Produce     json
// @Param       platform path   string true "ios | android"
// @Param       X-Device-OS-Version header string false "OS version"
// @Param       X-Device-Wallet-Installed header bool false "Google Wallet installed"
// @Success     200 {object} models.WalletAvailability
// @Failure     404 {object} APIError
// @Router      /{platform}/availability [get]
func IsWalletAvailable(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := svc.IsWalletAvailable(c.Request().Context(), device(c))
		if err != nil {
			return writeError(c, err)
		}
		if out.SupportedPassTypes == nil {
			out.SupportedPassTypes = []string{}
		}
		return writeJSON(c, http.StatusOK, out)
	}
}

// CanAddPasses
// @Summary     Can passes be added
// @Tags        wallet
// @Produce     json
// @Param       platform path string true "ios | android"
// @Success     200 {object} dto.CanAddPassesResponse
// @Failure     404 {object} APIError
// @Router      /{platform}/can-add-passes [get]
func CanAddPasses(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		ok, err := svc.CanAddPasses(c.Request().Context(), device(c))
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusOK, dto.FromCanAdd(ok))
	}
}

// AddPass — add<Variant>
// @Summary     Add pass
// @Tags        passes
// @Accept      json
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       kind     path string true "pkpass | secure-element | stored-value | identity-document | shareable"
// @Param       request  body object true "Pass attributes"
// @Success     200 {object} models.OperationResult
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /{platform}/passes/{kind} [post]
func AddPass(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind, err := passKind(c)
		if err != nil {
			return writeError(c, err)
		}
		var attrs pass.Attributes
		if err := c.Bind(&attrs); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		res, err := svc.AddPass(c.Request().Context(), device(c), kind, attrs)
		return writeResult(c, res, err)
	}
}

// UpdatePass — update<Variant>
// @Summary     Update pass
// @Tags        passes
// @Accept      json
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       kind     path string true "Pass kind"
// @Param       id       path string true "Serial number"
// @Param       request  body object true "Partial attributes"
// @Success     200 {object} models.OperationResult
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /{platform}/passes/{kind}/{id} [patch]
func UpdatePass(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind, err := passKind(c)
		if err != nil {
			return writeError(c, err)
		}
		var attrs pass.Attributes
		if err := c.Bind(&attrs); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		res, err := svc.UpdatePass(c.Request().Context(), device(c), kind, strings.TrimSpace(c.Param("id")), attrs)
		return writeResult(c, res, err)
	}
}

// RemovePass — remove<Variant>
// @Summary     Remove pass
// @Tags        passes
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       kind     path string true "Pass kind"
// @Param       id       path string true "Serial number"
// @Success     200 {object} models.OperationResult
// @Failure     404 {object} APIError
// @Router      /{platform}/passes/{kind}/{id} [delete]
func RemovePass(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind, err := passKind(c)
		if err != nil {
			return writeError(c, err)
		}
		res, err := svc.RemovePass(c.Request().Context(), device(c), kind, strings.TrimSpace(c.Param("id")))
		return writeResult(c, res, err)
	}
}

// UpdateBalance — updateStoredValueBalance
// @Summary     Update stored value balance
// @Tags        passes
// @Accept      json
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       kind     path string true "stored-value"
// @Param       id       path string true "Serial number"
// @Param       request  body dto.BalanceRequest true "New balance"
// @Success     200 {object} models.OperationResult
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /{platform}/passes/{kind}/{id}/balance [post]
func UpdateBalance(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := requireKind(c, models.KindStoredValue); err != nil {
			return writeError(c, err)
		}
		var req dto.BalanceRequest
		if err := c.Bind(&req); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		if err := req.Validate(); err != nil {
			return writeError(c, err)
		}
		res, err := svc.UpdateStoredValueBalance(c.Request().Context(), device(c), strings.TrimSpace(c.Param("id")), *req.Balance)
		return writeResult(c, res, err)
	}
}

// SharePass — sharePKPass
// @Summary     Share pass
// @Tags        passes
// @Accept      json
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       kind     path string true "shareable"
// @Param       id       path string true "Serial number"
// @Param       request  body dto.ShareRequest false "Recipients"
// @Success     200 {object} models.OperationResult
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /{platform}/passes/{kind}/{id}/share [post]
func SharePass(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := requireKind(c, models.KindShareable); err != nil {
			return writeError(c, err)
		}
		var req dto.ShareRequest
		if err := bindOptional(c, &req); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		if err := req.Validate(); err != nil {
			return writeError(c, err)
		}
		res, err := svc.SharePass(c.Request().Context(), device(c), strings.TrimSpace(c.Param("id")), req.Normalized())
		return writeResult(c, res, err)
	}
}

// requireKind: маршрут допускает только один вариант пропуска
func requireKind(c echo.Context, want models.PassKind) error {
	kind, err := passKind(c)
	if err != nil {
		return err
	}
	if kind != want {
		return wsvc.ErrUnknownKind
	}
	return nil
}

// ListPasses — getAllPasses
// @Summary     List passes
// @Tags        library
// @Produce     json
// @Param       platform path string true "ios | android"
// @Success     200 {object} models.PassList
// @Failure     404 {object} APIError
// @Failure     500 {object} APIError
// @Router      /{platform}/library [get]
func ListPasses(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := svc.ListPasses(c.Request().Context(), device(c))
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusOK, dto.EmptyPassList(out))
	}
}

// GetPass — getPassById
// @Summary     Get pass by id
// @Tags        library
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       id       path string true "Pass id"
// @Success     200 {object} models.PassLookup
// @Failure     404 {object} APIError
// @Failure     500 {object} APIError
// @Router      /{platform}/library/{id} [get]
func GetPass(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := svc.GetPass(c.Request().Context(), device(c), strings.TrimSpace(c.Param("id")))
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusOK, out)
	}
}

// PresentPass — presentPass
// @Summary     Present pass
// @Tags        library
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       id       path string true "Pass id"
// @Success     200 {object} models.OperationResult
// @Failure     404 {object} APIError
// @Router      /{platform}/library/{id}/present [post]
func PresentPass(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := svc.PresentPass(c.Request().Context(), device(c), strings.TrimSpace(c.Param("id")))
		return writeResult(c, res, err)
	}
}

// IsNFCSEAvailable — isNFCSEPlatformAvailable
// @Summary     NFC & SE platform availability
// @Tags        nfc
// @Produce     json
// @Param       platform path string true "ios | android"
// @Success     200 {object} dto.NFCSEResponse
// @Failure     404 {object} APIError
// @Router      /{platform}/nfc-se [get]
func IsNFCSEAvailable(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		ok, err := svc.IsNFCSEPlatformAvailable(c.Request().Context(), device(c))
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusOK, dto.FromNFCSE(ok))
	}
}

// CreateNFCCredential — createNFCSecureElementCredential
// @Summary     Create NFC secure element credential
// @Tags        nfc
// @Accept      json
// @Produce     json
// @Param       platform path string true "ios | android"
// @Param       request  body object false "Credential data"
// @Success     200 {object} models.OperationResult
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /{platform}/nfc-se/credentials [post]
func CreateNFCCredential(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var data map[string]any
		if err := bindOptional(c, &data); err != nil {
			return writeJSON(c, http.StatusBadRequest, errMalformed)
		}
		res, err := svc.CreateNFCCredential(c.Request().Context(), device(c), data)
		return writeResult(c, res, err)
	}
}

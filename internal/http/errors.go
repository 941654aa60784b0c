package http

import (
	"errors"
	"net/http"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

var errDeviceHeader = errors.New(HeaderDeviceWalletInstalled + " must be a boolean")

// MapError переводит транспортные/доменные ошибки в HTTP статус и тело APIError.
// Ошибки операций сюда не попадают: они уже свёрнуты в OperationResult.
func MapError(err error) (int, APIError) {
	switch {
	// Routing
	case errors.Is(err, wsvc.ErrUnknownPlatform):
		return http.StatusNotFound, APIError{Code: "unknown_platform", Message: "platform must be ios or android"}
	case errors.Is(err, wsvc.ErrUnknownKind):
		return http.StatusNotFound, APIError{Code: "unknown_kind", Message: "unknown pass kind"}

	// DTO validation
	case errors.Is(err, dto.ErrBalanceRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "balance required"}
	case errors.Is(err, dto.ErrRecipientInvalid):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "recipients must be non-empty strings"}
	case errors.Is(err, dto.ErrURLRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "url required"}
	case errors.Is(err, errDeviceHeader):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: errDeviceHeader.Error()}
	case errors.Is(err, apperrors.ErrMissingField), errors.Is(err, apperrors.ErrInvalidField):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: err.Error()}

	// Ports
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "pass not found"}
	case errors.Is(err, apperrors.ErrPlatformCallFailed):
		return http.StatusInternalServerError, APIError{Code: "platform_call_failed", Message: err.Error()}
	}
	return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
}

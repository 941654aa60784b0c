// Package result приводит исходы операций к единому OperationResult.
package result

import (
	"fmt"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// Outcome — метка исхода для метрик
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeMissingField     Outcome = "missing_field"
	OutcomeInvalidField     Outcome = "invalid_field"
	OutcomeUnsupported      Outcome = "unsupported"
	OutcomeNotImplemented   Outcome = "not_implemented"
	OutcomePlatformFailure  Outcome = "platform_failure"
	OutcomeNotFound         Outcome = "not_found"
	OutcomeUnclassifiedFail Outcome = "error"
)

// OK — успешный исход с идентификатором пропуска
func OK(passID string) models.OperationResult {
	return models.OperationResult{Success: true, PassID: passID}
}

// Fail — неуспех; сообщение берётся из ошибки как есть
func Fail(err error) models.OperationResult {
	if err == nil {
		return models.OperationResult{Success: false, Error: "unknown error"}
	}
	return models.OperationResult{Success: false, Error: err.Error()}
}

// From выбирает OK или Fail по ошибке
func From(passID string, err error) models.OperationResult {
	if err != nil {
		return Fail(err)
	}
	return OK(passID)
}

// NotOnAndroid — PassKit-операция на Android
func NotOnAndroid(kind models.PassKind) *apperrors.Error {
	return apperrors.Unsupported(fmt.Sprintf("%s is not available on Android. Use Google Wallet instead.", kind))
}

// NotOnIOS — операция Google Wallet на iOS
func NotOnIOS() *apperrors.Error {
	return apperrors.Unsupported("Google Wallet is not available on iOS. Use Apple Wallet instead.")
}

// RequiresIOS — вариант недоступен на текущей версии iOS
func RequiresIOS(feature, version string) *apperrors.Error {
	return apperrors.Unsupported(fmt.Sprintf("%s requires iOS %s or later", feature, version))
}

// OutcomeOf — метка исхода по классу ошибки
func OutcomeOf(err error) Outcome {
	switch apperrors.KindOf(err) {
	case "":
		return OutcomeSuccess
	case apperrors.KindMissingField:
		return OutcomeMissingField
	case apperrors.KindInvalidField:
		return OutcomeInvalidField
	case apperrors.KindUnsupportedOnPlatform:
		return OutcomeUnsupported
	case apperrors.KindNotYetImplemented:
		return OutcomeNotImplemented
	case apperrors.KindPlatformCallFailed:
		return OutcomePlatformFailure
	case apperrors.KindNotFound:
		return OutcomeNotFound
	}
	return OutcomeUnclassifiedFail
}

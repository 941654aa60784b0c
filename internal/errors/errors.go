// Package errors — таксономия ошибок кошелька.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind — машиночитаемый класс ошибки
type Kind string

const (
	KindUnknown               Kind = "UNKNOWN"
	KindMissingField          Kind = "MISSING_FIELD"
	KindInvalidField          Kind = "INVALID_FIELD"
	KindUnsupportedOnPlatform Kind = "UNSUPPORTED_ON_PLATFORM"
	KindNotYetImplemented     Kind = "NOT_YET_IMPLEMENTED"
	KindPlatformCallFailed    Kind = "PLATFORM_CALL_FAILED"
	KindNotFound              Kind = "NOT_FOUND"
)

// Error — доменная ошибка с классом и (опционально) именем поля
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is сравнивает по Kind, поэтому errors.Is(err, ErrNotFound) работает для любого сообщения
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrMissingField          = &Error{Kind: KindMissingField}
	ErrInvalidField          = &Error{Kind: KindInvalidField}
	ErrUnsupportedOnPlatform = &Error{Kind: KindUnsupportedOnPlatform}
	ErrNotYetImplemented     = &Error{Kind: KindNotYetImplemented}
	ErrPlatformCallFailed    = &Error{Kind: KindPlatformCallFailed}
	ErrNotFound              = &Error{Kind: KindNotFound}
)

func MissingField(field string) *Error {
	return &Error{
		Kind:    KindMissingField,
		Message: fmt.Sprintf("missing required field: %s", field),
		Field:   field,
	}
}

func InvalidField(field, value string) *Error {
	return &Error{
		Kind:    KindInvalidField,
		Message: fmt.Sprintf("invalid value %q for field: %s", value, field),
		Field:   field,
	}
}

func Unsupported(message string) *Error {
	return &Error{Kind: KindUnsupportedOnPlatform, Message: message}
}

func NotYetImplemented(message string) *Error {
	return &Error{Kind: KindNotYetImplemented, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// PlatformCall оборачивает сбой внешнего вызова; сообщение берётся из cause.
// Типизированная cause сохраняет свой Kind, обёртки fmt.Errorf остаются в сообщении.
func PlatformCall(cause error) *Error {
	var e *Error
	if !stderrors.As(cause, &e) {
		return &Error{Kind: KindPlatformCallFailed, Cause: cause}
	}
	if e == cause {
		return e
	}
	return &Error{Kind: e.Kind, Field: e.Field, Cause: cause}
}

// PlatformCallf — сбой платформы без исходной ошибки
func PlatformCallf(format string, args ...any) *Error {
	return &Error{Kind: KindPlatformCallFailed, Message: fmt.Sprintf(format, args...)}
}

// KindOf возвращает класс ошибки; nil -> "", нетипизированная -> KindUnknown
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FieldOf — имя поля для MissingField/InvalidField
func FieldOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Field
	}
	return ""
}

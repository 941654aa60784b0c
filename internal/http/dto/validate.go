package dto

import (
	"errors"
	"strings"
)

var (
	ErrBalanceRequired  = errors.New("balance required")
	ErrRecipientInvalid = errors.New("recipients must be non-empty strings")
	ErrURLRequired      = errors.New("url required")
)

// Validate проверяет BalanceRequest
func (r BalanceRequest) Validate() error {
	if r.Balance == nil {
		return ErrBalanceRequired
	}
	return nil
}

// Validate проверяет ShareRequest; пустой список допустим
func (r ShareRequest) Validate() error {
	for _, rc := range r.Recipients {
		if strings.TrimSpace(rc) == "" {
			return ErrRecipientInvalid
		}
	}
	return nil
}

func (r ViewLoadRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return ErrURLRequired
	}
	return nil
}

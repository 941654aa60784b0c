package service

import "errors"

var (
	ErrUnknownPlatform = errors.New("unknown_platform")
	ErrUnknownKind     = errors.New("unknown_kind")
)

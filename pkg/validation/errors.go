package validation

import (
	"errors"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrInvalidSchema  = errors.New("invalid schema")
	ErrUnknownTarget  = errors.New("unsupported validation target")
)

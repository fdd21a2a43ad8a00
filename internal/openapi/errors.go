package openapi

import "errors"

var (
	ErrUnsupportedNode = errors.New("unsupported schema node")
)

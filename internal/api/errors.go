package api

import (
	"errors"
	"net/http"

	"github.com/cubahno/schematest/pkg/schema"
	"github.com/cubahno/schematest/pkg/validation"
)

var (
	ErrInvalidSeed = errors.New("invalid seed")
)

// ErrorMessage is the body of every error response.
type ErrorMessage struct {
	Message string `json:"message"`
}

func GetErrorResponse(err error) *ErrorMessage {
	return &ErrorMessage{
		Message: err.Error(),
	}
}

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, schema.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, schema.ErrInvalidVersion),
		errors.Is(err, ErrInvalidSeed),
		errors.Is(err, validation.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, schema.ErrUnresolvedReference),
		errors.Is(err, schema.ErrCircularReference),
		errors.Is(err, schema.ErrInvalidInheritance):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

package cli

import (
	"errors"
	"strings"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
)

var (
	// ErrPayloadInvalid is returned by validate when the payload does not match.
	// Messages are already printed.
	ErrPayloadInvalid = errors.New("payload does not match schema")
)

var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError maps command errors to process exit codes.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrPayloadInvalid) {
		return ExitGeneralError
	}

	msg := err.Error()
	for _, p := range usagePatterns {
		if strings.Contains(msg, p) {
			return ExitUsageError
		}
	}
	return ExitGeneralError
}

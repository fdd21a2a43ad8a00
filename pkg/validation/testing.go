package validation

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"
)

type tHelper interface {
	Helper()
}

// AssertValid asserts that the payload matches the target schema.
func AssertValid(t assert.TestingT, v *Validator, payload, target any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	errs, err := v.Validate(payload, target)
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("Could not validate payload: %v", err), msgAndArgs...)
	}
	if len(errs) > 0 {
		return assert.Fail(t, "Payload does not match schema:\n\t"+strings.Join(errs, "\n\t"), msgAndArgs...)
	}
	return true
}

// AssertInvalid asserts that the payload fails validation, and when reasons are given,
// that every reason is among the messages.
func AssertInvalid(t assert.TestingT, v *Validator, payload, target any, reasons ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	errs, err := v.Validate(payload, target)
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("Could not validate payload: %v", err))
	}
	if len(errs) == 0 {
		return assert.Fail(t, "Payload unexpectedly matches schema")
	}

	ok := true
	for _, reason := range reasons {
		ok = assert.Contains(t, errs, reason) && ok
	}
	return ok
}

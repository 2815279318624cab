package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the error type the whole backend speaks. Status picks the
// HTTP class, Code is a stable machine-readable tag the frontend keys on.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation: malformed or missing required input, user-fixable.
func Validation(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// NotFound: a referenced entity is absent.
func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

// Upstream: a storage/AI/extraction collaborator failed; the original
// message is kept for diagnostics.
func Upstream(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}

// DataIntegrity: stored data violates an invariant. Implies a prior
// normalization bug, so callers log these loudly.
func DataIntegrity(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}

// EmptyResult: a filter or selection yielded nothing usable. Surfaced as a
// user-actionable 400, not a crash.
func EmptyResult(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// StatusOf extracts the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// CodeOf extracts the machine-readable code for err, if any.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func IsCode(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}

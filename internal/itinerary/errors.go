package itinerary

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

// Error is what the HTTP layer renders as {code, message, details}.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
	Status  int    `json:"-"`

	kind error
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.kind
}

func invalidInput(details string) *Error {
	return &Error{Code: "INVALID_INPUT", Message: "Invalid input", Details: details, Status: http.StatusBadRequest, kind: ErrInvalidInput}
}

func notFound(destination string) *Error {
	return &Error{
		Code:    "NOT_FOUND",
		Message: "Unknown destination or no POIs found",
		Details: map[string]string{"destination": destination},
		Status:  http.StatusNotFound,
		kind:    ErrNotFound,
	}
}

func internalError() *Error {
	return &Error{Code: "INTERNAL_ERROR", Message: "Unexpected error", Status: http.StatusInternalServerError, kind: ErrInternal}
}

// AsError maps any error to its wire form. Errors of unknown origin become
// INTERNAL_ERROR so internals never leak to the caller.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return internalError()
}

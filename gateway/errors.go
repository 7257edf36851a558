package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMethodNotAllowed is returned when a path does not declare the request method.
var ErrMethodNotAllowed = errors.New("method not allowed")

// methodNotAllowedMessage is the client-facing body for ErrMethodNotAllowed.
const methodNotAllowedMessage = "Method not allowed"

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// BadRequestError reports a request that could not be read at all
// (malformed JSON, bad query parameters).
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// AuthenticationError reports bad credentials or a missing/unrecognized token.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// Unauthorized builds an AuthenticationError.
func Unauthorized(message string) error {
	return &AuthenticationError{Message: message}
}

// NotFoundError reports a record that does not exist for the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NotFound builds a NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// statusFor maps an error onto the HTTP status and client message.
// The bool is false for unexpected errors, which become 500s.
func statusFor(err error) (int, string, bool) {
	var (
		validation *ValidationError
		badRequest *BadRequestError
		authErr    *AuthenticationError
		notFound   *NotFoundError
	)
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, methodNotAllowedMessage, true
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error(), true
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, badRequest.Message, true
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, authErr.Message, true
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error(), true
	}
	return http.StatusInternalServerError, "Internal server error", false
}

// Package apperror provides domain-specific error types for LearnHub.
// These errors carry an HTTP status code, a stable machine-readable code
// from the authentication taxonomy, and a user-safe message. The Echo
// error handler maps them to appropriate HTTP responses automatically.
//
// NEVER return raw database or infrastructure errors to the client. Always
// wrap them in an apperror type or return a generic internal error.
package apperror

import (
	"fmt"
	"net/http"
)

// Stable machine-readable codes. Clients branch on these (e.g. focusing the
// email field on UserNotFound vs. a generic banner on InvalidCredentials),
// so they must never change even if the messages do.
const (
	CodeUserNotFound       = "UserNotFound"
	CodeInvalidCredentials = "InvalidCredentials"
	CodeMissingCredentials = "MissingCredentials"
	CodeValidation         = "ValidationError"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeNotFound           = "NotFound"
	CodeBadRequest         = "BadRequest"
	CodeUnauthorized       = "Unauthorized"
	CodeForbidden          = "Forbidden"
	CodeConflict           = "Conflict"
	CodeDefault            = "Default"
)

// FieldError is a single field-level validation violation. Validation
// collects every violation so the client can render all of them at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the base error type for all domain errors. Exactly one is
// produced per failed operation; there are no partial outcomes.
type AppError struct {
	// Status is the HTTP status code (e.g., 401, 409, 500).
	Status int `json:"-"`

	// Code is the stable machine-readable classifier.
	Code string `json:"code"`

	// Message is a human-readable description safe for the client. Callers
	// may override it but must preserve Code.
	Message string `json:"message"`

	// Fields holds per-field validation violations, if any.
	Fields []FieldError `json:"errors,omitempty"`

	// Internal holds the underlying error for logging. Never exposed to client.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// --- Authentication taxonomy constructors ---

// NewUserNotFound creates a 401 for a sign-in attempt against an unknown
// email. A matching record with no password hash produces the same error:
// the two cases are deliberately indistinguishable to the caller.
func NewUserNotFound() *AppError {
	return &AppError{
		Status:  http.StatusUnauthorized,
		Code:    CodeUserNotFound,
		Message: "No account is associated with this email address",
	}
}

// NewInvalidCredentials creates a 401 for a wrong password.
func NewInvalidCredentials() *AppError {
	return &AppError{
		Status:  http.StatusUnauthorized,
		Code:    CodeInvalidCredentials,
		Message: "Incorrect email or password",
	}
}

// NewMissingCredentials creates a 400 for an empty email or password.
func NewMissingCredentials() *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeMissingCredentials,
		Message: "Please provide an email and a password",
	}
}

// NewValidation creates a 400 carrying every collected field violation.
func NewValidation(fields []FieldError) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "Invalid input data",
		Fields:  fields,
	}
}

// NewEmailExists creates a 409 for a duplicate registration email. This is
// the one persistence fault given a distinct user-facing code.
func NewEmailExists() *AppError {
	return &AppError{
		Status:  http.StatusConflict,
		Code:    CodeEmailExists,
		Message: "An account already exists with this email address",
	}
}

// --- Generic constructors ---

// NewUnsupportedMediaType creates a 415 for a request body in a content type
// the endpoint does not accept.
func NewUnsupportedMediaType(message string) *AppError {
	return &AppError{Status: http.StatusUnsupportedMediaType, Code: CodeBadRequest, Message: message}
}

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: message}
}

// NewUnauthorized creates a 401 Unauthorized error.
func NewUnauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// NewForbidden creates a 403 Forbidden error.
func NewForbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// NewConflict creates a 409 Conflict error.
func NewConflict(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Code: CodeConflict, Message: message}
}

// NewInternal creates a 500 Internal Server Error. The real error is stored
// in Internal for logging but the client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Status:   http.StatusInternalServerError,
		Code:     CodeDefault,
		Message:  "An unexpected error occurred",
		Internal: err,
	}
}

// SafeMessage returns the client-safe error message from an error. If the
// error is an AppError, returns its Message field (which is safe to expose).
// For any other error type, returns a generic message to prevent leaking
// internal details like table names, query structure, or stack traces.
func SafeMessage(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Message
	}
	return "an unexpected error occurred"
}

// SafeStatus returns the HTTP status code from an AppError, or 500 for
// any other error type.
func SafeStatus(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

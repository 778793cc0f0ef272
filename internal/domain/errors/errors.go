// Package errors defines the application error taxonomy. Every error that can
// reach a client carries an HTTP status, a stable business error code, and a
// user-facing message.
package errors

import (
	"net/http"

	"passport/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Business error codes. The numeric values are part of the wire contract and
// must stay stable across releases.
const (
	CodeValidateError            = "0000"
	CodeEntityNotFound           = "1001"
	CodeEntityConflict           = "1002"
	CodeResetPasswordMismatch    = "2001"
	CodeNotAuthenticated         = "4001"
	CodeInvalidCredentials       = "4002"
	CodeTokenExpired             = "4003"
	CodeInvalidTokenType         = "4004"
	CodeTokenRevoked             = "4005"
	CodeInactiveAccount          = "4006"
	CodeOperationNotPermitted    = "4007"
	CodeIncorrectEmailOrPassword = "4008"
)

// Predefined error types
var (
	// Validation errors
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		CodeValidateError,
		"Request validation failed",
		"",
	)

	// Entity errors
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		CodeEntityNotFound,
		"Account not found",
		"",
	)

	ErrEmailConflict = NewBaseError(
		http.StatusConflict,
		CodeEntityConflict,
		"Email already registered",
		"",
	)

	// Account errors
	ErrResetPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		CodeResetPasswordMismatch,
		"Incorrect password",
		"",
	)

	// Auth errors
	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		CodeNotAuthenticated,
		"Not authenticated",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		CodeInvalidCredentials,
		"Could not validate credentials",
		"",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		CodeTokenExpired,
		"Token expired",
		"",
	)

	ErrInvalidTokenType = NewBaseError(
		http.StatusUnauthorized,
		CodeInvalidTokenType,
		"Invalid token type",
		"",
	)

	ErrTokenRevoked = NewBaseError(
		http.StatusUnauthorized,
		CodeTokenRevoked,
		"Token revoked",
		"",
	)

	// Declared for wire-contract parity; inactive accounts currently surface
	// through ErrOperationNotPermitted in the role check.
	ErrInactiveAccount = NewBaseError(
		http.StatusUnauthorized,
		CodeInactiveAccount,
		"Inactive account",
		"",
	)

	ErrOperationNotPermitted = NewBaseError(
		http.StatusForbidden,
		CodeOperationNotPermitted,
		"Operation not permitted",
		"",
	)

	ErrIncorrectEmailOrPassword = NewBaseError(
		http.StatusUnauthorized,
		CodeIncorrectEmailOrPassword,
		"Incorrect email or password",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

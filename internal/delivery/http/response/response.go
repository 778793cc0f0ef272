// Package response defines the wire envelopes shared by all handlers.
package response

import "github.com/labstack/echo/v4"

// GenericResponse is the success envelope. Both fields are optional; a bare
// 200 carries an empty object.
type GenericResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the error envelope. ErrorCode is the stable business code,
// Message the user-facing text.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// FieldError describes one field-level validation failure.
type FieldError struct {
	Location  string `json:"location"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
	Context   string `json:"context,omitempty"`
}

// ValidationErrorResponse extends the error envelope with a per-field list.
type ValidationErrorResponse struct {
	ErrorCode string       `json:"error_code"`
	Message   string       `json:"message"`
	Errors    []FieldError `json:"errors"`
}

// Success writes the success envelope with the given status code.
func Success(c echo.Context, statusCode int, message string, data any) error {
	return c.JSON(statusCode, GenericResponse{
		Message: message,
		Data:    data,
	})
}

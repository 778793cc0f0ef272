// Package validator wires go-playground/validator as echo's request validator.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// EchoValidator adapts validator.Validate to echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New constructs the validator used by the echo server.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate implements echo.Validator. The raw validator.ValidationErrors is
// returned unwrapped so the error handler can render the per-field list.
func (v *EchoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

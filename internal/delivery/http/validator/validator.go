// Package validator adapts go-playground validation to Echo's Validator hook.
package validator

import (
	"storefront/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// EchoValidator wraps the validator instance used for request payloads.
type EchoValidator struct {
	validate *playground.Validate
}

// New creates the validator used by the Echo server.
func New() *EchoValidator {
	return &EchoValidator{validate: playground.New()}
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}

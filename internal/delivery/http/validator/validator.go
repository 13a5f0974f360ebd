// Package validator plugs go-playground/validator into echo as the
// request validator.
package validator

import (
	domainerrors "storefront/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator on top of struct tags.
type Validator struct {
	validate *playground.Validate
}

// New creates a Validator with the default tag set.
func New() *Validator {
	return &Validator{validate: playground.New()}
}

// Validate checks the struct tags of i and surfaces failures as a
// validation AppError so the error handler renders a 400.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}

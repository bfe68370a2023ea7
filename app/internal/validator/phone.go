package validator

import (
	"github.com/go-playground/validator/v10"

	validatorUtil "backend/identity-platform/app/pkg/util/validator"
)

type PhoneNumberValidator struct{}

func NewPhoneNumberValidator() IValidator {
	return &PhoneNumberValidator{}
}

// Register validates mainland China mobile numbers. Empty strings pass so the
// tag composes with omitempty on optional fields.
func (v *PhoneNumberValidator) Register() (validator.Func, string) {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return validatorUtil.IsValidPhoneNumber(value)
	}, "cnphone"
}

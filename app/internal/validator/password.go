package validator

import (
	"github.com/go-playground/validator/v10"

	validatorUtil "backend/identity-platform/app/pkg/util/validator"
)

type PasswordValidator struct{}

func NewPasswordValidator() IValidator {
	return &PasswordValidator{}
}

// Register enforces the password strength policy. Detailed suggestions come
// from the manager layer, which re-runs the check to build the response.
func (v *PasswordValidator) Register() (validator.Func, string) {
	return func(fl validator.FieldLevel) bool {
		strength := validatorUtil.CheckPasswordStrength(fl.Field().String())
		return strength.Valid
	}, "strongpassword"
}

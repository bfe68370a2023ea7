package validator

import (
	"github.com/go-playground/validator/v10"

	validatorUtil "backend/identity-platform/app/pkg/util/validator"
)

type UsernameValidator struct{}

func NewUsernameValidator() IValidator {
	return &UsernameValidator{}
}

func (v *UsernameValidator) Register() (validator.Func, string) {
	return func(fl validator.FieldLevel) bool {
		return validatorUtil.IsValidUsername(fl.Field().String())
	}, "username"
}

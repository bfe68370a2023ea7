package request

import (
	"time"

	"backend/identity-platform/app/database/constant/profile"
	"backend/identity-platform/app/database/constant/user"
)

// UpdateUserRequest is a partial update. Nil fields are left untouched.
type UpdateUserRequest struct {
	Nickname    *string      `json:"nickname,omitempty" validate:"omitempty,max=50"`
	PhoneNumber *string      `json:"phone_number,omitempty" validate:"omitempty,cnphone"`
	Email       *string      `json:"email,omitempty" validate:"omitempty,email"`
	Avatar      *string      `json:"avatar,omitempty" validate:"omitempty,url"`
	Gender      *user.Gender `json:"gender,omitempty"`
	Birthday    *time.Time   `json:"birthday,omitempty"`
}

type UpdateProfileRequest struct {
	Bio          *string               `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location     *string               `json:"location,omitempty" validate:"omitempty,max=100"`
	Website      *string               `json:"website,omitempty" validate:"omitempty,url"`
	Company      *string               `json:"company,omitempty" validate:"omitempty,max=100"`
	JobTitle     *string               `json:"job_title,omitempty" validate:"omitempty,max=100"`
	PrivacyLevel *profile.PrivacyLevel `json:"privacy_level,omitempty"`
	Preferences  map[string]any        `json:"preferences,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=32"`
}

type SendVerificationCodeRequest struct {
	Channel string `json:"channel" validate:"omitempty,oneof=sms email"`
}

type VerifyPhoneRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type SearchUsersRequest struct {
	PaginationRequest
	Status *user.Status `json:"status,omitempty" query:"status"`
	Gender *user.Gender `json:"gender,omitempty" query:"gender"`
}

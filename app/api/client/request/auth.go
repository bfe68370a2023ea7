package request

type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,username"`
	Password        string  `json:"password" validate:"required,strongpassword"`
	PasswordConfirm string  `json:"password_confirm" validate:"required"`
	PhoneNumber     string  `json:"phone_number" validate:"required,cnphone"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Nickname        *string `json:"nickname,omitempty" validate:"omitempty,max=50"`
}

// LoginRequest authenticates by identifier, which may be a username or a
// phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,notblank"`
	Password   string `json:"password" validate:"required"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest carries the refresh token in the body. The controller
// falls back to the refresh cookie when the body is empty.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

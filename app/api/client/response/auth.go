package response

import "github.com/google/uuid"

type RegisterResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
}

// TokenPairResponse additionally flattens the token claims for clients that
// do not parse the JWT.
type TokenPairResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	Username     string        `json:"username"`
	Nickname     string        `json:"nickname"`
	Email        *string       `json:"email,omitempty"`
	PhoneNumber  *string       `json:"phone_number,omitempty"`
	User         *UserResponse `json:"user,omitempty"`
}

type VerifyTokenResponse struct {
	Valid bool          `json:"valid"`
	User  *UserResponse `json:"user,omitempty"`
}

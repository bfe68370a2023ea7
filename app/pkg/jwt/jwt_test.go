package jwt_test

import (
	"testing"
	"time"

	"backend/identity-platform/app/internal/config"
	"backend/identity-platform/app/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJwt() jwt.Jwt {
	return jwt.NewJwt(config.JwtConfig{
		Issuer:            "identity-platform-test",
		SecretKey:         "test-secret-key",
		AccessExpiration:  15 * time.Minute,
		RefreshExpiration: 7 * 24 * time.Hour,
	})
}

func testSubject() jwt.Subject {
	email := "test@example.com"
	phone := "13800138000"
	return jwt.Subject{
		UserID:      uuid.New(),
		Username:    "testuser",
		Nickname:    "Tester",
		Email:       &email,
		PhoneNumber: &phone,
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := newTestJwt()
	subject := testSubject()

	token, err := manager.GenerateAccessToken(subject)
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiredAt, 5*time.Second)

	claims, err := manager.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, subject.UserID, *claims.UserID)
	assert.Equal(t, subject.Username, *claims.Username)
	assert.Equal(t, subject.Nickname, *claims.Nickname)
	assert.Equal(t, *subject.Email, *claims.Email)
	assert.Equal(t, *subject.PhoneNumber, *claims.PhoneNumber)
	assert.Equal(t, "identity-platform-test", claims.Issuer)
	assert.Nil(t, claims.RefreshTokenBase64)
}

func TestGenerateRefreshToken(t *testing.T) {
	manager := newTestJwt()

	token, err := manager.GenerateRefreshToken(testSubject())
	require.NoError(t, err)
	require.NotEmpty(t, token.TokenBase64)

	claims, err := manager.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.TokenTypeRefresh, claims.TokenType)
	require.NotNil(t, claims.RefreshTokenBase64)
	assert.Equal(t, token.TokenBase64, *claims.RefreshTokenBase64)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	manager := newTestJwt()
	subject := testSubject()

	first, err := manager.GenerateRefreshToken(subject)
	require.NoError(t, err)
	second, err := manager.GenerateRefreshToken(subject)
	require.NoError(t, err)

	assert.NotEqual(t, first.TokenBase64, second.TokenBase64)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := newTestJwt()
	other := jwt.NewJwt(config.JwtConfig{
		Issuer:            "identity-platform-test",
		SecretKey:         "a-different-secret",
		AccessExpiration:  15 * time.Minute,
		RefreshExpiration: 7 * 24 * time.Hour,
	})

	token, err := other.GenerateAccessToken(testSubject())
	require.NoError(t, err)

	_, err = manager.ValidateToken(token.Token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	manager := jwt.NewJwt(config.JwtConfig{
		Issuer:            "identity-platform-test",
		SecretKey:         "test-secret-key",
		AccessExpiration:  -1 * time.Minute,
		RefreshExpiration: 7 * 24 * time.Hour,
	})

	token, err := manager.GenerateAccessToken(testSubject())
	require.NoError(t, err)

	_, err = manager.ValidateToken(token.Token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := newTestJwt()

	_, err := manager.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestGetExpirationTime(t *testing.T) {
	manager := newTestJwt()
	assert.Equal(t, int64(900), manager.GetExpirationTime())
}

func TestGenerateRandomBase64(t *testing.T) {
	first, err := jwt.GenerateRandomBase64(32)
	require.NoError(t, err)
	second, err := jwt.GenerateRandomBase64(32)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

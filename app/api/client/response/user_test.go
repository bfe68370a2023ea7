package response_test

import (
	"testing"
	"time"

	"backend/identity-platform/app/api/client/response"
	"backend/identity-platform/app/database/constant/profile"
	"backend/identity-platform/app/database/constant/user"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/pkg/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUserResponseMasksContactDetails(t *testing.T) {
	u := &entity.User{
		ID:          uuid.New(),
		Username:    "alice_01",
		Nickname:    "Alice",
		Email:       util.ToPointer("test@example.com"),
		PhoneNumber: util.ToPointer("13800138000"),
		Gender:      user.Female,
		Status:      user.Active,
		CreatedAt:   time.Now(),
	}

	resp := response.ToUserResponse(u)
	require.NotNil(t, resp)

	require.NotNil(t, resp.PhoneNumber)
	assert.Equal(t, "138****8000", *resp.PhoneNumber)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "t**t@example.com", *resp.Email)
}

func TestToUserResponseAvatarFallback(t *testing.T) {
	u := &entity.User{
		ID:        uuid.New(),
		Username:  "alice_01",
		Nickname:  "Alice",
		Status:    user.Active,
		CreatedAt: time.Now(),
	}

	resp := response.ToUserResponse(u)
	require.NotNil(t, resp)
	assert.Contains(t, resp.Avatar, "gravatar.com/avatar/")
	assert.Contains(t, resp.Avatar, "s=80")

	u.Avatar = util.ToPointer("https://cdn.example.com/alice.png")
	resp = response.ToUserResponse(u)
	assert.Equal(t, "https://cdn.example.com/alice.png", resp.Avatar)
}

func TestToUserResponseIncludesProfile(t *testing.T) {
	u := &entity.User{
		ID:        uuid.New(),
		Username:  "alice_01",
		Nickname:  "Alice",
		Status:    user.Active,
		CreatedAt: time.Now(),
		Profile: &entity.UserProfile{
			Bio:           util.ToPointer("hello"),
			PrivacyLevel:  profile.Public,
			PhoneVerified: true,
		},
	}

	resp := response.ToUserResponse(u)
	require.NotNil(t, resp)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "hello", *resp.Profile.Bio)
	assert.Equal(t, profile.Public, resp.Profile.PrivacyLevel)
	assert.True(t, resp.Profile.PhoneVerified)
}

func TestToUserResponseNil(t *testing.T) {
	assert.Nil(t, response.ToUserResponse(nil))
	assert.Nil(t, response.ToProfileResponse(nil))
}

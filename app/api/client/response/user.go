package response

import (
	"time"

	"github.com/google/uuid"

	"backend/identity-platform/app/database/constant/profile"
	"backend/identity-platform/app/database/constant/user"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/pkg/util"
	validatorUtil "backend/identity-platform/app/pkg/util/validator"
)

// UserResponse is the public shape of a user. The phone number and email are
// masked and the password hash is never present.
type UserResponse struct {
	ID          uuid.UUID        `json:"id"`
	Username    string           `json:"username"`
	Nickname    string           `json:"nickname"`
	Email       *string          `json:"email,omitempty"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	Avatar      string           `json:"avatar"`
	Gender      user.Gender      `json:"gender"`
	Birthday    *time.Time       `json:"birthday,omitempty"`
	Status      user.Status      `json:"status"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	Profile     *ProfileResponse `json:"profile,omitempty"`
}

type ProfileResponse struct {
	Bio           *string              `json:"bio,omitempty"`
	Location      *string              `json:"location,omitempty"`
	Website       *string              `json:"website,omitempty"`
	Company       *string              `json:"company,omitempty"`
	JobTitle      *string              `json:"job_title,omitempty"`
	PrivacyLevel  profile.PrivacyLevel `json:"privacy_level"`
	Preferences   map[string]any       `json:"preferences,omitempty"`
	EmailVerified bool                 `json:"email_verified"`
	PhoneVerified bool                 `json:"phone_verified"`
}

type StatisticsResponse struct {
	TotalUsers    int `json:"total_users"`
	ActiveUsers   int `json:"active_users"`
	NewUsersToday int `json:"new_users_today"`
}

func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}

	avatar := ""
	if u.Avatar != nil {
		avatar = *u.Avatar
	}
	if avatar == "" {
		avatar = validatorUtil.GravatarURL(u.Username, 80)
	}

	resp := &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Nickname:    u.Nickname,
		Avatar:      avatar,
		Gender:      u.Gender,
		Birthday:    u.Birthday,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}

	if u.Email != nil {
		resp.Email = util.ToPointer(validatorUtil.MaskEmailAddress(*u.Email))
	}
	if u.PhoneNumber != nil {
		resp.PhoneNumber = util.ToPointer(validatorUtil.MaskPhoneNumber(*u.PhoneNumber))
	}
	if u.Profile != nil {
		resp.Profile = ToProfileResponse(u.Profile)
	}

	return resp
}

func ToProfileResponse(p *entity.UserProfile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		Bio:           p.Bio,
		Location:      p.Location,
		Website:       p.Website,
		Company:       p.Company,
		JobTitle:      p.JobTitle,
		PrivacyLevel:  p.PrivacyLevel,
		Preferences:   p.Preferences,
		EmailVerified: p.EmailVerified,
		PhoneVerified: p.PhoneVerified,
	}
}

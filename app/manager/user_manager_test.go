package manager_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"backend/identity-platform/app/api/client/request"
	"backend/identity-platform/app/database/constant/delivery"
	"backend/identity-platform/app/database/constant/profile"
	"backend/identity-platform/app/database/constant/user"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/database/repository"
	"backend/identity-platform/app/manager"
	"backend/identity-platform/app/pkg/bcrypt"
	"backend/identity-platform/app/pkg/sqs"
	"backend/identity-platform/app/pkg/util"
	"backend/identity-platform/app/pkg/verification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xbcrypt "golang.org/x/crypto/bcrypt"
)

type userManagerFixture struct {
	um         manager.UserManager
	repos      *repository.Repositories
	users      *fakeUserRepository
	profiles   *fakeProfileRepository
	deliveries *fakeDeliveryRepository
	queue      *fakeQueue
	verifier   *fakeVerifier
}

func newUserManagerFixture(t *testing.T) *userManagerFixture {
	t.Helper()
	res := newTestResource(true)
	repos, users, _, profiles, deliveries := newFakeRepositories()
	hasher := bcrypt.NewBcrypt(xbcrypt.MinCost)
	q := &fakeQueue{}
	v := &fakeVerifier{code: "123456"}
	um := manager.NewUserManager(res, &hasher, v, q, sqs.NopPublisher{}, repos)
	return &userManagerFixture{
		um:         um,
		repos:      repos,
		users:      users,
		profiles:   profiles,
		deliveries: deliveries,
		queue:      q,
		verifier:   v,
	}
}

func (f *userManagerFixture) seedUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hasher := bcrypt.NewBcrypt(xbcrypt.MinCost)
	hashed, err := hasher.HashPassword(password)
	require.NoError(t, err)

	u := &entity.User{
		Username:    "alice_01",
		Nickname:    "Alice",
		Password:    hashed,
		PhoneNumber: util.ToPointer("13800138000"),
		Email:       util.ToPointer("test@example.com"),
		Status:      user.Active,
		CreatedAt:   time.Now(),
	}
	_, err = f.repos.UserRepository.Insert(context.Background(), u)
	require.NoError(t, err)
	_, err = f.repos.ProfileRepository.Insert(context.Background(), &entity.UserProfile{UserID: u.ID})
	require.NoError(t, err)
	return u
}

func TestGetUser(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	resp, err := f.um.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice_01", resp.Username)
	require.NotNil(t, resp.PhoneNumber)
	assert.Equal(t, "138****8000", *resp.PhoneNumber)
}

func TestGetUserNotFound(t *testing.T) {
	f := newUserManagerFixture(t)

	_, err := f.um.GetUser(context.Background(), uuid.New())
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestUpdateInfo(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	birthday := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)
	resp, err := f.um.UpdateInfo(context.Background(), u.ID, request.UpdateUserRequest{
		Nickname: util.ToPointer("Alicia"),
		Gender:   util.ToPointer(user.Female),
		Birthday: &birthday,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", resp.Nickname)
	assert.Equal(t, user.Female, resp.Gender)
	require.NotNil(t, resp.Birthday)
	assert.True(t, birthday.Equal(*resp.Birthday))
	// Untouched fields stay as they were.
	assert.Equal(t, "alice_01", resp.Username)

	stored, err := f.repos.UserRepository.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.UpdatedAt)
}

func TestUpdateInfoInvalidPhone(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	_, err := f.um.UpdateInfo(context.Background(), u.ID, request.UpdateUserRequest{
		PhoneNumber: util.ToPointer("12345"),
	})
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestUpdateInfoDuplicatePhone(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	_, err := f.repos.UserRepository.Insert(context.Background(), &entity.User{
		Username:    "bob_02",
		Nickname:    "Bob",
		Password:    "irrelevant",
		PhoneNumber: util.ToPointer("13900139000"),
		Status:      user.Active,
	})
	require.NoError(t, err)

	_, err = f.um.UpdateInfo(context.Background(), u.ID, request.UpdateUserRequest{
		PhoneNumber: util.ToPointer("13900139000"),
	})
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestUpdateInfoKeepOwnPhone(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	// Submitting the phone number you already own is not a conflict.
	resp, err := f.um.UpdateInfo(context.Background(), u.ID, request.UpdateUserRequest{
		PhoneNumber: util.ToPointer("13800138000"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PhoneNumber)
	assert.Equal(t, "138****8000", *resp.PhoneNumber)
}

func TestChangePassword(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")
	ctx := context.Background()

	err := f.um.ChangePassword(ctx, u.ID, request.ChangePasswordRequest{
		OldPassword: "Str0ngPass!",
		NewPassword: "N3wStr0ngPass!",
	}, "127.0.0.1")
	require.NoError(t, err)

	stored, err := f.repos.UserRepository.FindByID(ctx, u.ID)
	require.NoError(t, err)
	hasher := bcrypt.NewBcrypt(xbcrypt.MinCost)
	ok, err := hasher.CheckPassword("N3wStr0ngPass!", stored.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	err := f.um.ChangePassword(context.Background(), u.ID, request.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "N3wStr0ngPass!",
	}, "127.0.0.1")
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestChangePasswordTooShortNewPassword(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	err := f.um.ChangePassword(context.Background(), u.ID, request.ChangePasswordRequest{
		OldPassword: "Str0ngPass!",
		NewPassword: "abcde",
	}, "127.0.0.1")
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestChangePasswordAcceptsSimplePassword(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")
	ctx := context.Background()

	// Six characters of one class is enough for a change; the strength
	// policy only applies at registration.
	err := f.um.ChangePassword(ctx, u.ID, request.ChangePasswordRequest{
		OldPassword: "Str0ngPass!",
		NewPassword: "abcdef",
	}, "127.0.0.1")
	require.NoError(t, err)

	stored, err := f.repos.UserRepository.FindByID(ctx, u.ID)
	require.NoError(t, err)
	hasher := bcrypt.NewBcrypt(xbcrypt.MinCost)
	ok, err := hasher.CheckPassword("abcdef", stored.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetStatistics(t *testing.T) {
	f := newUserManagerFixture(t)
	ctx := context.Background()

	f.seedUser(t, "Str0ngPass!")
	_, err := f.repos.UserRepository.Insert(ctx, &entity.User{
		Username:  "old_timer",
		Nickname:  "Old",
		Password:  "irrelevant",
		Status:    user.Inactive,
		CreatedAt: time.Now().AddDate(0, 0, -30),
	})
	require.NoError(t, err)

	stats, err := f.um.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveUsers)
	assert.Equal(t, 1, stats.NewUsersToday)
}

func TestGetProfileCreatesMissingRow(t *testing.T) {
	f := newUserManagerFixture(t)
	ctx := context.Background()

	u := &entity.User{
		Username: "no_profile",
		Nickname: "NP",
		Password: "irrelevant",
		Status:   user.Active,
	}
	_, err := f.repos.UserRepository.Insert(ctx, u)
	require.NoError(t, err)

	resp, err := f.um.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, resp)

	_, err = f.repos.ProfileRepository.FindByUserID(ctx, u.ID)
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	resp, err := f.um.UpdateProfile(context.Background(), u.ID, request.UpdateProfileRequest{
		Bio:          util.ToPointer("builder of things"),
		Location:     util.ToPointer("Shanghai"),
		PrivacyLevel: util.ToPointer(profile.Friends),
		Preferences:  map[string]any{"theme": "dark"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, "builder of things", *resp.Bio)
	assert.Equal(t, profile.Friends, resp.PrivacyLevel)
	assert.Equal(t, "dark", resp.Preferences["theme"])

	stored, err := f.repos.ProfileRepository.FindByUserID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.UpdatedAt)
}

func TestSendVerificationCodeSms(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")
	ctx := context.Background()

	require.NoError(t, f.um.SendVerificationCode(ctx, u.ID, "sms"))

	require.Len(t, f.deliveries.jobs, 1)
	job := f.deliveries.jobs[0]
	assert.Equal(t, delivery.Sms, job.Channel)
	assert.Equal(t, "13800138000", job.Recipient)
	assert.Equal(t, delivery.Pending, job.Status)
	assert.NotEmpty(t, job.CodeKey)
	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, job.ID, f.queue.jobs[0].ID)
}

func TestSendVerificationCodeDefaultsToSms(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	require.NoError(t, f.um.SendVerificationCode(context.Background(), u.ID, ""))
	require.Len(t, f.deliveries.jobs, 1)
	assert.Equal(t, delivery.Sms, f.deliveries.jobs[0].Channel)
}

func TestSendVerificationCodeEmail(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	require.NoError(t, f.um.SendVerificationCode(context.Background(), u.ID, "email"))
	require.Len(t, f.deliveries.jobs, 1)
	assert.Equal(t, delivery.Email, f.deliveries.jobs[0].Channel)
	assert.Equal(t, "test@example.com", f.deliveries.jobs[0].Recipient)
}

func TestSendVerificationCodeNoRecipient(t *testing.T) {
	f := newUserManagerFixture(t)
	ctx := context.Background()

	u := &entity.User{
		Username: "no_contact",
		Nickname: "NC",
		Password: "irrelevant",
		Status:   user.Active,
	}
	_, err := f.repos.UserRepository.Insert(ctx, u)
	require.NoError(t, err)

	err = f.um.SendVerificationCode(ctx, u.ID, "sms")
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestSendVerificationCodeRateLimited(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")
	f.verifier.issueErr = verification.ErrRateLimited

	err := f.um.SendVerificationCode(context.Background(), u.ID, "sms")
	assertHTTPError(t, err, http.StatusTooManyRequests)
}

func TestVerifyPhone(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")
	ctx := context.Background()

	require.NoError(t, f.um.VerifyPhone(ctx, u.ID, "123456"))

	p, err := f.repos.ProfileRepository.FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, p.PhoneVerified)
}

func TestVerifyPhoneAfterEmailDelivery(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")
	ctx := context.Background()

	// A code delivered over email still confirms the phone.
	require.NoError(t, f.um.SendVerificationCode(ctx, u.ID, "email"))
	require.NoError(t, f.um.VerifyPhone(ctx, u.ID, "123456"))

	p, err := f.repos.ProfileRepository.FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, p.PhoneVerified)
}

func TestVerifyPhoneWrongCode(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")

	err := f.um.VerifyPhone(context.Background(), u.ID, "000000")
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestVerifyPhoneTooManyAttempts(t *testing.T) {
	f := newUserManagerFixture(t)
	u := f.seedUser(t, "Str0ngPass!")
	f.verifier.verifyErr = verification.ErrTooManyAttempts

	err := f.um.VerifyPhone(context.Background(), u.ID, "123456")
	assertHTTPError(t, err, http.StatusTooManyRequests)
}

func TestSearchUsers(t *testing.T) {
	f := newUserManagerFixture(t)
	ctx := context.Background()

	f.seedUser(t, "Str0ngPass!")
	_, err := f.repos.UserRepository.Insert(ctx, &entity.User{
		Username: "bob_02",
		Nickname: "Bob",
		Password: "irrelevant",
		Status:   user.Inactive,
	})
	require.NoError(t, err)

	results, total, err := f.um.SearchUsers(ctx, request.SearchUsersRequest{
		Status: util.ToPointer(user.Active),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "alice_01", results[0].Username)
}

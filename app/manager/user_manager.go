package manager

import (
	"backend/identity-platform/app/api/client/exception"
	"backend/identity-platform/app/api/client/request"
	"backend/identity-platform/app/api/client/response"
	"backend/identity-platform/app/database/constant/delivery"
	userstatus "backend/identity-platform/app/database/constant/user"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/database/repository"
	queryUtil "backend/identity-platform/app/database/repository/query_utils"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/pkg/bcrypt"
	"backend/identity-platform/app/pkg/queue"
	"backend/identity-platform/app/pkg/sqs"
	paging "backend/identity-platform/app/pkg/util/paging"
	validatorUtil "backend/identity-platform/app/pkg/util/validator"
	"backend/identity-platform/app/pkg/verification"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserManager interface {
	GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	UpdateInfo(ctx context.Context, id uuid.UUID, req request.UpdateUserRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, id uuid.UUID, req request.ChangePasswordRequest, clientIP string) error
	GetStatistics(ctx context.Context) (*response.StatisticsResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*response.ProfileResponse, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req request.UpdateProfileRequest) (*response.ProfileResponse, error)
	SendVerificationCode(ctx context.Context, id uuid.UUID, channel string) error
	VerifyPhone(ctx context.Context, id uuid.UUID, code string) error
	SearchUsers(ctx context.Context, req request.SearchUsersRequest) ([]response.UserResponse, int, error)
}

// phoneVerificationScope namespaces the code in redis. Delivery may go out
// over sms or email, but the code always confirms the phone.
const phoneVerificationScope = "phone"

type DefaultUserManager struct {
	logger        *zap.Logger
	res           runtime.Resource
	hasher        bcrypt.Hasher
	verifier      verification.Verifier
	deliveryQueue queue.Queue
	publisher     sqs.Publisher
	repositories  *repository.Repositories
}

func NewUserManager(
	res runtime.Resource,
	hasher bcrypt.Hasher,
	verifier verification.Verifier,
	deliveryQueue queue.Queue,
	publisher sqs.Publisher,
	repositories *repository.Repositories,
) UserManager {
	return &DefaultUserManager{
		res:           res,
		logger:        res.Logger,
		hasher:        hasher,
		verifier:      verifier,
		deliveryQueue: deliveryQueue,
		publisher:     publisher,
		repositories:  repositories,
	}
}

func (d *DefaultUserManager) GetUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := d.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return response.ToUserResponse(user), nil
}

func (d *DefaultUserManager) UpdateInfo(ctx context.Context, id uuid.UUID, req request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := d.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PhoneNumber != nil {
		if !validatorUtil.IsValidPhoneNumber(*req.PhoneNumber) {
			return nil, exception.NewBadRequestError(exception.ErrInvalidParameter,
				int(exception.ErrorCodeInvalidParameter), "invalid phone number")
		}
		other, err := d.repositories.UserRepository.FindByPhoneNumber(ctx, *req.PhoneNumber)
		if err != nil && !queryUtil.IsNotFound(err) {
			return nil, err
		}
		if err == nil && other.ID != user.ID {
			return nil, exception.NewBadRequestError(exception.ErrDuplicateIdentity,
				int(exception.ErrorCodeDuplicateIdentity), "phone number already registered")
		}
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Birthday != nil {
		user.Birthday = req.Birthday
	}

	updated, err := d.repositories.UserRepository.Update(ctx, *user)
	if err != nil {
		if queryUtil.IsUniqueViolation(err) {
			return nil, exception.NewBadRequestError(exception.ErrDuplicateIdentity,
				int(exception.ErrorCodeDuplicateIdentity), exception.ErrDuplicateIdentity.Error())
		}
		return nil, err
	}
	updated.Profile = user.Profile

	return response.ToUserResponse(updated), nil
}

func (d *DefaultUserManager) ChangePassword(ctx context.Context, id uuid.UUID, req request.ChangePasswordRequest, clientIP string) error {
	user, err := d.findUser(ctx, id)
	if err != nil {
		return err
	}

	valid, err := d.hasher.CheckPassword(req.OldPassword, user.Password)
	if err != nil {
		return fmt.Errorf("failed to check password: %w", err)
	}
	if !valid {
		return exception.NewBadRequestError(exception.ErrInvalidCredentials,
			int(exception.ErrorCodeInvalidCredentials), "old password does not match")
	}

	// Password changes only require the minimum length; the full strength
	// policy applies at registration.
	if len(req.NewPassword) < validatorUtil.PasswordMinLength {
		return exception.NewBadRequestError(exception.ErrWeakPassword,
			int(exception.ErrorCodeWeakPassword), "new password must be at least 6 characters")
	}

	hashed, err := d.hasher.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := d.repositories.UserRepository.UpdatePassword(ctx, id, hashed); err != nil {
		return err
	}

	d.publishAudit(ctx, sqs.PasswordChanged, user, clientIP)

	return nil
}

// GetStatistics counts users overall, active, and created since the server's
// local midnight.
func (d *DefaultUserManager) GetStatistics(ctx context.Context) (*response.StatisticsResponse, error) {
	total, err := d.repositories.UserRepository.CountTotal(ctx)
	if err != nil {
		return nil, err
	}
	active, err := d.repositories.UserRepository.CountByStatus(ctx, userstatus.Active)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	newToday, err := d.repositories.UserRepository.CountCreatedSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	return &response.StatisticsResponse{
		TotalUsers:    total,
		ActiveUsers:   active,
		NewUsersToday: newToday,
	}, nil
}

func (d *DefaultUserManager) GetProfile(ctx context.Context, id uuid.UUID) (*response.ProfileResponse, error) {
	profile, err := d.findOrCreateProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return response.ToProfileResponse(profile), nil
}

func (d *DefaultUserManager) UpdateProfile(ctx context.Context, id uuid.UUID, req request.UpdateProfileRequest) (*response.ProfileResponse, error) {
	profile, err := d.findOrCreateProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Location != nil {
		profile.Location = req.Location
	}
	if req.Website != nil {
		profile.Website = req.Website
	}
	if req.Company != nil {
		profile.Company = req.Company
	}
	if req.JobTitle != nil {
		profile.JobTitle = req.JobTitle
	}
	if req.PrivacyLevel != nil {
		profile.PrivacyLevel = *req.PrivacyLevel
	}
	if req.Preferences != nil {
		profile.Preferences = entity.Preferences(req.Preferences)
	}

	updated, err := d.repositories.ProfileRepository.Update(ctx, *profile)
	if err != nil {
		return nil, err
	}
	return response.ToProfileResponse(updated), nil
}

func (d *DefaultUserManager) SendVerificationCode(ctx context.Context, id uuid.UUID, channel string) error {
	if channel == "" {
		channel = string(delivery.Sms)
	}

	user, err := d.findUser(ctx, id)
	if err != nil {
		return err
	}

	var recipient string
	switch delivery.Channel(channel) {
	case delivery.Sms:
		if user.PhoneNumber == nil {
			return exception.NewBadRequestError(exception.ErrInvalidParameter,
				int(exception.ErrorCodeInvalidParameter), "no phone number on file")
		}
		recipient = *user.PhoneNumber
	case delivery.Email:
		if user.Email == nil {
			return exception.NewBadRequestError(exception.ErrInvalidParameter,
				int(exception.ErrorCodeInvalidParameter), "no email address on file")
		}
		recipient = *user.Email
	default:
		return exception.NewBadRequestError(exception.ErrInvalidParameter,
			int(exception.ErrorCodeInvalidParameter), "unknown delivery channel")
	}

	// The code always verifies the phone; the channel only picks the
	// delivery transport. Issue under one scope so either transport's code
	// confirms.
	_, codeKey, err := d.verifier.IssueCode(ctx, id, phoneVerificationScope, recipient)
	if err != nil {
		if errors.Is(err, verification.ErrRateLimited) {
			return exception.NewTooManyRequestsError(err,
				int(exception.ErrorCodeRateLimitExceeded), exception.ErrRateLimitExceeded.Error())
		}
		return err
	}

	job := &entity.DeliveryJob{
		ID:          uuid.New(),
		UserID:      id,
		Channel:     delivery.Channel(channel),
		Recipient:   recipient,
		CodeKey:     codeKey,
		MaxAttempts: 3,
		Status:      delivery.Pending,
	}
	if err := d.repositories.DeliveryRepository.Create(ctx, job); err != nil {
		return fmt.Errorf("failed to record delivery job: %w", err)
	}
	if err := d.deliveryQueue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("failed to enqueue delivery job: %w", err)
	}

	return nil
}

func (d *DefaultUserManager) VerifyPhone(ctx context.Context, id uuid.UUID, code string) error {
	user, err := d.findUser(ctx, id)
	if err != nil {
		return err
	}

	if err := d.verifier.VerifyCode(ctx, id, phoneVerificationScope, code); err != nil {
		switch {
		case errors.Is(err, verification.ErrTooManyAttempts):
			return exception.NewTooManyRequestsError(err,
				int(exception.ErrorCodeRateLimitExceeded), err.Error())
		case errors.Is(err, verification.ErrCodeExpired), errors.Is(err, verification.ErrCodeMismatch):
			return exception.NewBadRequestError(exception.ErrInvalidVerifyCode,
				int(exception.ErrorCodeInvalidVerifyCode), exception.ErrInvalidVerifyCode.Error())
		default:
			return err
		}
	}

	if err := d.repositories.ProfileRepository.UpdatePhoneVerified(ctx, id, true); err != nil {
		return err
	}

	d.publishAudit(ctx, sqs.PhoneVerified, user, "")

	return nil
}

func (d *DefaultUserManager) SearchUsers(ctx context.Context, req request.SearchUsersRequest) ([]response.UserResponse, int, error) {
	req.LoadDefaultValues()

	filter := repository.UserSearchFilter{
		Status: req.Status,
		Gender: req.Gender,
	}
	page := paging.Page{
		Limit:   req.Size,
		Offset:  (req.Page - 1) * req.Size,
		SortBy:  paging.SortBy(req.SortBy),
		OrderBy: req.OrderBy,
	}

	users, total, err := d.repositories.UserRepository.Search(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}

	out := make([]response.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *response.ToUserResponse(&users[i]))
	}
	return out, total, nil
}

func (d *DefaultUserManager) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := d.repositories.UserRepository.FindByIDWithProfile(ctx, id)
	if err != nil {
		if queryUtil.IsNotFound(err) {
			return nil, exception.NewBadRequestError(exception.ErrUserNotFound,
				int(exception.ErrorCodeEntityNotFound), exception.ErrUserNotFound.Error())
		}
		return nil, err
	}
	return user, nil
}

func (d *DefaultUserManager) findOrCreateProfile(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error) {
	profile, err := d.repositories.ProfileRepository.FindByUserID(ctx, id)
	if err == nil {
		return profile, nil
	}
	if !queryUtil.IsNotFound(err) {
		return nil, err
	}

	// Profiles are created with the user, but tolerate a missing row.
	if _, err := d.findUser(ctx, id); err != nil {
		return nil, err
	}
	return d.repositories.ProfileRepository.Insert(ctx, &entity.UserProfile{UserID: id})
}

func (d *DefaultUserManager) publishAudit(ctx context.Context, event sqs.EventType, user *entity.User, clientIP string) {
	payload := sqs.AuditPayload{
		UserID:     user.ID.String(),
		Username:   user.Username,
		IPAddress:  clientIP,
		OccurredAt: time.Now(),
	}
	if err := d.publisher.Publish(ctx, event, payload); err != nil {
		d.logger.Warn("failed to publish audit event",
			zap.String("event", event.String()),
			zap.Error(err))
	}
}

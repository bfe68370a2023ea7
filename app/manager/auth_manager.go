package manager

import (
	"backend/identity-platform/app/api/client/exception"
	"backend/identity-platform/app/api/client/request"
	"backend/identity-platform/app/api/client/response"
	userstatus "backend/identity-platform/app/database/constant/user"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/database/repository"
	queryUtil "backend/identity-platform/app/database/repository/query_utils"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/pkg/bcrypt"
	"backend/identity-platform/app/pkg/jwt"
	"backend/identity-platform/app/pkg/sqs"
	"backend/identity-platform/app/pkg/util"
	validatorUtil "backend/identity-platform/app/pkg/util/validator"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type AuthManager interface {
	Register(ctx context.Context, req request.RegisterRequest, clientIP string) (*response.RegisterResponse, error)
	Login(ctx context.Context, req request.LoginRequest, clientIP string) (*response.AuthResponse, error)
	ObtainTokenPair(ctx context.Context, req request.TokenRequest, clientIP string) (*response.TokenPairResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*response.AuthResponse, error)
	VerifyAccessToken(ctx context.Context, accessToken string) (*response.VerifyTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type DefaultAuthManager struct {
	logger       *zap.Logger
	res          runtime.Resource
	hasher       bcrypt.Hasher
	jwtManager   jwt.Jwt
	publisher    sqs.Publisher
	repositories *repository.Repositories
}

func NewAuthManager(
	res runtime.Resource,
	hasher bcrypt.Hasher,
	jwtManager jwt.Jwt,
	publisher sqs.Publisher,
	repositories *repository.Repositories,
) AuthManager {
	return &DefaultAuthManager{
		res:          res,
		logger:       res.Logger,
		hasher:       hasher,
		jwtManager:   jwtManager,
		publisher:    publisher,
		repositories: repositories,
	}
}

func (d *DefaultAuthManager) Register(ctx context.Context, req request.RegisterRequest, clientIP string) (*response.RegisterResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, exception.NewBadRequestError(exception.ErrPasswordConfirmation,
			int(exception.ErrorCodeValidationFailed), exception.ErrPasswordConfirmation.Error())
	}

	// Pre-checks give friendly errors; the unique indexes stay the final
	// authority under concurrent registration.
	if exists, err := d.repositories.UserRepository.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, exception.NewBadRequestError(exception.ErrDuplicateIdentity,
			int(exception.ErrorCodeDuplicateIdentity), "username already registered")
	}
	if exists, err := d.repositories.UserRepository.ExistsByPhoneNumber(ctx, req.PhoneNumber); err != nil {
		return nil, err
	} else if exists {
		return nil, exception.NewBadRequestError(exception.ErrDuplicateIdentity,
			int(exception.ErrorCodeDuplicateIdentity), "phone number already registered")
	}

	hashed, err := d.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	nickname := req.Username
	if req.Nickname != nil && *req.Nickname != "" {
		nickname = *req.Nickname
	}

	user := &entity.User{
		Username:    req.Username,
		Password:    hashed,
		Nickname:    nickname,
		PhoneNumber: &req.PhoneNumber,
		Email:       req.Email,
		Status:      userstatus.Active,
	}

	if err := d.repositories.UserRepository.InsertWithProfile(ctx, user, &entity.UserProfile{}); err != nil {
		if queryUtil.IsUniqueViolation(err) {
			d.logger.Info("registration lost unique-index race",
				zap.String("constraint", queryUtil.UniqueViolationColumn(err)))
			return nil, exception.NewBadRequestError(exception.ErrDuplicateIdentity,
				int(exception.ErrorCodeDuplicateIdentity), exception.ErrDuplicateIdentity.Error())
		}
		return nil, err
	}

	d.publishAudit(ctx, sqs.UserRegistered, user, clientIP, nil)

	return &response.RegisterResponse{UserID: user.ID, Username: user.Username}, nil
}

func (d *DefaultAuthManager) Login(ctx context.Context, req request.LoginRequest, clientIP string) (*response.AuthResponse, error) {
	user, err := d.authenticate(ctx, req.Identifier, req.Password, clientIP)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := d.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &response.AuthResponse{
		User:         response.ToUserResponse(user),
		AccessToken:  accessToken.Token,
		RefreshToken: refreshToken,
		TokenType:    jwt.TokenTypeBearer,
		ExpiresIn:    d.jwtManager.GetExpirationTime(),
	}, nil
}

func (d *DefaultAuthManager) ObtainTokenPair(ctx context.Context, req request.TokenRequest, clientIP string) (*response.TokenPairResponse, error) {
	user, err := d.authenticate(ctx, req.Username, req.Password, clientIP)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := d.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := &response.TokenPairResponse{
		AccessToken:  accessToken.Token,
		RefreshToken: refreshToken,
		TokenType:    jwt.TokenTypeBearer,
		ExpiresIn:    d.jwtManager.GetExpirationTime(),
		Username:     user.Username,
		Nickname:     user.Nickname,
		User:         response.ToUserResponse(user),
	}
	if user.Email != nil {
		resp.Email = util.ToPointer(validatorUtil.MaskEmailAddress(*user.Email))
	}
	if user.PhoneNumber != nil {
		resp.PhoneNumber = util.ToPointer(validatorUtil.MaskPhoneNumber(*user.PhoneNumber))
	}
	return resp, nil
}

func (d *DefaultAuthManager) RefreshToken(ctx context.Context, refreshToken string) (*response.AuthResponse, error) {
	session, claims, err := d.validateSession(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := d.repositories.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		if queryUtil.IsNotFound(err) {
			return nil, d.unauthorized(exception.ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.Status != userstatus.Active {
		return nil, d.unauthorized(exception.ErrAccountDisabled)
	}

	accessToken, err := d.jwtManager.GenerateAccessToken(toSubject(user))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	resp := &response.AuthResponse{
		AccessToken: accessToken.Token,
		TokenType:   jwt.TokenTypeBearer,
		ExpiresIn:   d.jwtManager.GetExpirationTime(),
	}

	if d.res.Config.JwtConfig.RotateRefresh {
		if err := d.repositories.SessionRepository.RevokeByTokenHash(ctx, hashTokenSecret(*claims.RefreshTokenBase64)); err != nil {
			return nil, fmt.Errorf("failed to revoke session: %w", err)
		}
		rotated, err := d.createSession(ctx, user)
		if err != nil {
			return nil, err
		}
		resp.RefreshToken = rotated
	}

	return resp, nil
}

func (d *DefaultAuthManager) VerifyAccessToken(ctx context.Context, accessToken string) (*response.VerifyTokenResponse, error) {
	claims, err := d.jwtManager.ValidateToken(accessToken)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess || claims.UserID == nil {
		return &response.VerifyTokenResponse{Valid: false}, d.unauthorized(exception.ErrInvalidToken)
	}

	user, err := d.repositories.UserRepository.FindByID(ctx, *claims.UserID)
	if err != nil {
		return &response.VerifyTokenResponse{Valid: false}, d.unauthorized(exception.ErrInvalidToken)
	}

	return &response.VerifyTokenResponse{Valid: true, User: response.ToUserResponse(user)}, nil
}

func (d *DefaultAuthManager) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := d.jwtManager.ValidateToken(refreshToken)
	if err != nil || claims.RefreshTokenBase64 == nil || *claims.RefreshTokenBase64 == "" {
		// Logout is idempotent. An unparsable token has no session to revoke.
		return nil
	}
	if err := d.repositories.SessionRepository.RevokeByTokenHash(ctx, hashTokenSecret(*claims.RefreshTokenBase64)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// authenticate resolves the identifier, verifies the password and records the
// login. Identifiers shaped like a phone number resolve via phone first.
func (d *DefaultAuthManager) authenticate(ctx context.Context, identifier, password, clientIP string) (*entity.User, error) {
	var (
		user *entity.User
		err  error
	)
	if validatorUtil.IsValidPhoneNumber(identifier) {
		user, err = d.repositories.UserRepository.FindByPhoneNumber(ctx, identifier)
		if err != nil && queryUtil.IsNotFound(err) {
			user, err = d.repositories.UserRepository.FindByUsername(ctx, identifier)
		}
	} else {
		user, err = d.repositories.UserRepository.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if queryUtil.IsNotFound(err) {
			return nil, d.unauthorized(exception.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	valid, err := d.hasher.CheckPassword(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to check password: %w", err)
	}
	if !valid {
		return nil, d.unauthorized(exception.ErrInvalidCredentials)
	}
	if user.Status != userstatus.Active {
		return nil, d.unauthorized(exception.ErrInvalidCredentials)
	}

	if err := d.repositories.UserRepository.UpdateLastLogin(ctx, user.ID, clientIP); err != nil {
		d.logger.Warn("failed to record last login", zap.Error(err))
	}
	now := time.Now()
	user.LastLoginAt = &now
	user.LastLoginIP = &clientIP

	d.publishAudit(ctx, sqs.UserLogin, user, clientIP, nil)

	return user, nil
}

func (d *DefaultAuthManager) issueTokenPair(ctx context.Context, user *entity.User) (*jwt.AccessToken, string, error) {
	accessToken, err := d.jwtManager.GenerateAccessToken(toSubject(user))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := d.createSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return accessToken, refreshToken, nil
}

// validateSession checks the refresh JWT and looks up its backing session.
func (d *DefaultAuthManager) validateSession(ctx context.Context, token string) (*entity.Session, *jwt.Claims, error) {
	claims, err := d.jwtManager.ValidateToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, nil, d.unauthorized(exception.ErrInvalidToken)
	}
	if claims.RefreshTokenBase64 == nil || *claims.RefreshTokenBase64 == "" {
		return nil, nil, d.unauthorized(exception.ErrInvalidToken)
	}

	session, err := d.repositories.SessionRepository.FindByTokenHash(ctx, hashTokenSecret(*claims.RefreshTokenBase64))
	if err != nil {
		if queryUtil.IsNotFound(err) {
			return nil, nil, d.unauthorized(exception.ErrInvalidToken)
		}
		return nil, nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session.Revoked {
		return nil, nil, d.unauthorized(exception.ErrInvalidToken)
	}
	if session.ExpiresAt != nil && session.ExpiresAt.Before(time.Now()) {
		return nil, nil, d.unauthorized(exception.ErrTokenExpired)
	}
	return session, claims, nil
}

func (d *DefaultAuthManager) createSession(ctx context.Context, user *entity.User) (string, error) {
	refreshToken, err := d.jwtManager.GenerateRefreshToken(toSubject(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	exp := time.Now().Add(d.res.Config.JwtConfig.RefreshExpiration)
	_, err = d.repositories.SessionRepository.Insert(ctx, &entity.Session{
		UserID:    user.ID,
		TokenHash: hashTokenSecret(refreshToken.TokenBase64),
		ExpiresAt: &exp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}
	return refreshToken.Token, nil
}

func (d *DefaultAuthManager) publishAudit(ctx context.Context, event sqs.EventType, user *entity.User, clientIP string, detail map[string]string) {
	payload := sqs.AuditPayload{
		UserID:     user.ID.String(),
		Username:   user.Username,
		IPAddress:  clientIP,
		OccurredAt: time.Now(),
		Detail:     detail,
	}
	if err := d.publisher.Publish(ctx, event, payload); err != nil {
		d.logger.Warn("failed to publish audit event",
			zap.String("event", event.String()),
			zap.Error(err))
	}
}

func (d *DefaultAuthManager) unauthorized(err error) error {
	return exception.NewUnauthorizedError(err, int(exception.ErrorCodeUnauthorized), err.Error())
}

func toSubject(user *entity.User) jwt.Subject {
	return jwt.Subject{
		UserID:      user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}
}

func hashTokenSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"

	"backend/identity-platform/app/internal/config"
	redisutil "backend/identity-platform/app/pkg/redis"

	"github.com/google/uuid"
	"github.com/spartan-truongvi/redis_rate/v10"
)

var (
	ErrRateLimited     = errors.New("verification code requested too frequently")
	ErrCodeExpired     = errors.New("verification code expired or not issued")
	ErrCodeMismatch    = errors.New("verification code does not match")
	ErrTooManyAttempts = errors.New("too many verification attempts")
)

// Verifier issues short-lived numeric codes and checks them against what the
// user submits. Codes live only in redis and vanish on expiry, on success, or
// after too many failed attempts.
type Verifier interface {
	IssueCode(ctx context.Context, userID uuid.UUID, scope, recipient string) (string, string, error)
	VerifyCode(ctx context.Context, userID uuid.UUID, scope, code string) error
	PeekCode(ctx context.Context, codeKey string) (string, error)
}

type DefaultVerifier struct {
	config  config.VerificationConfig
	redis   redisutil.Redis
	limiter redisutil.RateLimiter
}

func NewVerifier(cfg config.VerificationConfig, rds redisutil.Redis) Verifier {
	return &DefaultVerifier{
		config:  cfg,
		redis:   rds,
		limiter: redisutil.NewRedisRateLimiter(rds),
	}
}

func codeKey(userID uuid.UUID, scope string) string {
	return fmt.Sprintf("verification:code:%s:%s", userID, scope)
}

func attemptsKey(userID uuid.UUID, scope string) string {
	return fmt.Sprintf("verification:attempts:%s:%s", userID, scope)
}

// IssueCode generates a fresh code for the user and scope, replacing any
// outstanding one. Returns the code and the redis key it is stored under.
func (v *DefaultVerifier) IssueCode(ctx context.Context, userID uuid.UUID, scope, recipient string) (string, string, error) {
	limit := redis_rate.PerMinute(v.config.SendPerMinute)
	res, err := v.limiter.Allow(ctx, "verification:send:"+recipient, limit)
	if err != nil {
		return "", "", fmt.Errorf("rate limiting code send: %w", err)
	}
	if res.Allowed == 0 {
		return "", "", ErrRateLimited
	}

	code, err := GenerateNumericCode(v.config.CodeLength)
	if err != nil {
		return "", "", err
	}

	key := codeKey(userID, scope)
	if err := v.redis.SetPrimitive(ctx, key, code, v.config.CodeTTL); err != nil {
		return "", "", fmt.Errorf("storing verification code: %w", err)
	}
	_ = v.redis.Delete(ctx, attemptsKey(userID, scope))

	return code, key, nil
}

func (v *DefaultVerifier) VerifyCode(ctx context.Context, userID uuid.UUID, scope, code string) error {
	var stored string
	err := v.redis.GetPrimitive(ctx, codeKey(userID, scope), &stored)
	if redisutil.IsNotFound(err) {
		return ErrCodeExpired
	}
	if err != nil {
		return fmt.Errorf("loading verification code: %w", err)
	}

	attempts, err := v.redis.GetUniversalClient().Incr(ctx, attemptsKey(userID, scope)).Result()
	if err != nil {
		return fmt.Errorf("counting verification attempts: %w", err)
	}
	_ = v.redis.SetExpire(ctx, attemptsKey(userID, scope), v.config.CodeTTL)
	if attempts > int64(v.config.MaxAttempts) {
		_ = v.redis.Delete(ctx, codeKey(userID, scope))
		return ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrCodeMismatch
	}

	_ = v.redis.Delete(ctx, codeKey(userID, scope))
	_ = v.redis.Delete(ctx, attemptsKey(userID, scope))
	return nil
}

// PeekCode reads a stored code by its key without consuming it. Used by the
// delivery worker to fetch what it needs to send.
func (v *DefaultVerifier) PeekCode(ctx context.Context, key string) (string, error) {
	var stored string
	err := v.redis.GetPrimitive(ctx, key, &stored)
	if redisutil.IsNotFound(err) {
		return "", ErrCodeExpired
	}
	if err != nil {
		return "", err
	}
	return stored, nil
}

func GenerateNumericCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generating verification code: %w", err)
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}

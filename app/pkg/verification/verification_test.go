package verification_test

import (
	"context"
	"testing"
	"time"

	"backend/identity-platform/app/internal/config"
	redisutil "backend/identity-platform/app/pkg/redis"
	"backend/identity-platform/app/pkg/verification"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (redisutil.Redis, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rds, err := redisutil.NewUniversalRedisClient(config.RedisConfig{
		Hosts:    mr.Addr(),
		PoolSize: 2,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rds.Close() })
	return rds, mr
}

func newTestVerifier(t *testing.T) (verification.Verifier, *miniredis.Miniredis) {
	rds, mr := newTestRedis(t)
	cfg := config.VerificationConfig{
		CodeLength:    6,
		CodeTTL:       5 * time.Minute,
		SendPerMinute: 2,
		MaxAttempts:   3,
	}
	return verification.NewVerifier(cfg, rds), mr
}

func TestIssueAndVerifyCode(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	ctx := context.Background()
	userID := uuid.New()

	code, key, err := verifier.IssueCode(ctx, userID, "sms", "13800138000")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Contains(t, key, userID.String())

	require.NoError(t, verifier.VerifyCode(ctx, userID, "sms", code))

	// A code is consumed on success
	err = verifier.VerifyCode(ctx, userID, "sms", code)
	assert.ErrorIs(t, err, verification.ErrCodeExpired)
}

func TestVerifyCode_Mismatch(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	ctx := context.Background()
	userID := uuid.New()

	code, _, err := verifier.IssueCode(ctx, userID, "sms", "13800138000")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	err = verifier.VerifyCode(ctx, userID, "sms", wrong)
	assert.ErrorIs(t, err, verification.ErrCodeMismatch)

	// The right code still works after a single miss
	require.NoError(t, verifier.VerifyCode(ctx, userID, "sms", code))
}

func TestVerifyCode_TooManyAttempts(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	ctx := context.Background()
	userID := uuid.New()

	code, _, err := verifier.IssueCode(ctx, userID, "sms", "13800138000")
	require.NoError(t, err)

	wrong := "999999"
	if code == wrong {
		wrong = "999998"
	}
	for i := 0; i < 3; i++ {
		err = verifier.VerifyCode(ctx, userID, "sms", wrong)
		assert.ErrorIs(t, err, verification.ErrCodeMismatch)
	}

	err = verifier.VerifyCode(ctx, userID, "sms", code)
	assert.ErrorIs(t, err, verification.ErrTooManyAttempts)
}

func TestVerifyCode_Expired(t *testing.T) {
	verifier, mr := newTestVerifier(t)
	ctx := context.Background()
	userID := uuid.New()

	_, _, err := verifier.IssueCode(ctx, userID, "sms", "13800138000")
	require.NoError(t, err)

	mr.FastForward(6 * time.Minute)

	err = verifier.VerifyCode(ctx, userID, "sms", "123456")
	assert.ErrorIs(t, err, verification.ErrCodeExpired)
}

func TestIssueCode_RateLimited(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	ctx := context.Background()
	userID := uuid.New()

	_, _, err := verifier.IssueCode(ctx, userID, "sms", "13800138000")
	require.NoError(t, err)
	_, _, err = verifier.IssueCode(ctx, userID, "sms", "13800138000")
	require.NoError(t, err)

	_, _, err = verifier.IssueCode(ctx, userID, "sms", "13800138000")
	assert.ErrorIs(t, err, verification.ErrRateLimited)

	// A different recipient has its own budget
	_, _, err = verifier.IssueCode(ctx, userID, "sms", "13900139000")
	require.NoError(t, err)
}

func TestGenerateNumericCode(t *testing.T) {
	code, err := verification.GenerateNumericCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}

	// Zero length falls back to six digits
	code, err = verification.GenerateNumericCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

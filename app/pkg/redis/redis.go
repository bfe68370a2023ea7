package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis interface {
	GetUniversalClient() redis.UniversalClient
	Reset(ctx context.Context) error
	Close() error
	// Optimal method to use to set a value into redis. It supports only primitive types like string, int, float, etc.
	// The detail can be checked at https://github.com/redis/go-redis/blob/master/internal/proto/scan.go
	SetPrimitive(ctx context.Context, key string, value any, ttl_sec time.Duration) error

	// Optimal method to use to get a value into redis. It supports only primitive types like string, int, float, etc.
	// The detail can be checked at https://github.com/redis/go-redis/blob/master/internal/proto/scan.go
	GetPrimitive(ctx context.Context, key string, outPtr any) error

	// Default method to use to set a value into redis. It supports any type of value including structs, maps, slices, etc.
	Set(ctx context.Context, key string, value any, ttl_sec time.Duration) error

	// Default method to use to get a value into redis. It supports any type of value including structs, maps, slices, etc.
	Get(ctx context.Context, key string, outPtr any) error
	Delete(ctx context.Context, key string) error
	Increment(ctx context.Context, key string, val int64) error
	Decrement(ctx context.Context, key string, val int64) error
	SetExpire(ctx context.Context, key string, ttl_sec time.Duration) error
	AcquireLock(ctx context.Context, lockKey string, ttl_sec time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, lockKey string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error)

	HSet(ctx context.Context, key string, fields map[string]interface{}) error
	HDel(ctx context.Context, key string, field string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	HVals(ctx context.Context, key string) ([]string, error)
	HExists(ctx context.Context, key, field string) (bool, error)
	HLen(ctx context.Context, key string) (int64, error)
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	SAdd(ctx context.Context, key string, members ...interface{}) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SRem(ctx context.Context, key string, members ...any) error
	SCard(ctx context.Context, key string) (int64, error)

	TxPipeline(ctx context.Context, fn func(pipe redis.Pipeliner) error) ([]redis.Cmder, error)
	GetAllKeysWithPattern(
		ctx context.Context,
		pattern string,
	) ([]string, error)
}

func SkipNotFound(err error) error {
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

func Wrap[T any](
	c context.Context,
	r Redis,
	key string,
	model *T,
	ttls time.Duration,
	callback func() (T, error),
) (err error) {
	if err = r.Get(c, key, model); err != nil {
		res, err := callback()
		if nil != err {
			return err
		}
		*model = res
		return r.Set(c, key, res, ttls)
	}
	return err
}

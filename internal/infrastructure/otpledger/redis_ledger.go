package otpledger

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freeads/marketplace-api/internal/domain/repository"
	"github.com/freeads/marketplace-api/pkg/helpers"
)

// RedisLedger stores pending OTP entries as JSON values with a native TTL,
// so in-flight codes survive restarts and are shared across instances.
type RedisLedger struct {
	rdb *redis.Client
}

func NewRedisLedger(rdb *redis.Client) *RedisLedger {
	return &RedisLedger{rdb: rdb}
}

func (l *RedisLedger) Put(ctx context.Context, phone string, entry repository.OTPEntry, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, l.rdb, helpers.KeyLoginOTP(phone), entry, ttl)
}

func (l *RedisLedger) Get(ctx context.Context, phone string) (*repository.OTPEntry, error) {
	var entry repository.OTPEntry
	ok, err := helpers.RedisGetJSON(ctx, l.rdb, helpers.KeyLoginOTP(phone), &entry)
	if err != nil || !ok {
		return nil, err
	}
	return &entry, nil
}

func (l *RedisLedger) Delete(ctx context.Context, phone string) error {
	return helpers.RedisDel(ctx, l.rdb, helpers.KeyLoginOTP(phone))
}

var _ repository.OTPLedger = (*RedisLedger)(nil)

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "otp:"

// consumeScript compares and deletes in one round trip so one-time use
// holds under concurrent verify calls for the same subject.
var consumeScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
return 0
`)

// RedisStore keeps OTP records in Redis with key-level TTL, letting
// multiple gateway replicas share one OTP space.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, rec Record, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisKeyPrefix+rec.Subject, rec.Code, ttl).Err(); err != nil {
		return fmt.Errorf("save otp record: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, subject, code string) (bool, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{redisKeyPrefix + subject}, code).Int()
	if err != nil {
		return false, fmt.Errorf("consume otp record: %w", err)
	}
	return res == 1, nil
}

func (s *RedisStore) Delete(ctx context.Context, subject string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+subject).Err(); err != nil {
		return fmt.Errorf("delete otp record: %w", err)
	}
	return nil
}

// Package resettoken stores password-reset tokens in Redis with a TTL, so
// tokens expire without any sweeper process.
package resettoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL is how long a password-reset token stays redeemable.
const DefaultTTL = 30 * time.Minute

// ErrInvalidToken is returned when a token is unknown, expired, or does not
// belong to the given user.
var ErrInvalidToken = errors.New("invalid reset token")

// Store is the reset-token port.
type Store interface {
	Issue(ctx context.Context, userID uint, token string) error
	// Consume validates the token for the user and deletes it. A token is
	// single use.
	Consume(ctx context.Context, userID uint, token string) error
}

// RedisStore keeps one key per user under reset:<userID>.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func key(userID uint) string {
	return fmt.Sprintf("reset:%d", userID)
}

func (s *RedisStore) Issue(ctx context.Context, userID uint, token string) error {
	return s.client.Set(ctx, key(userID), token, s.ttl).Err()
}

func (s *RedisStore) Consume(ctx context.Context, userID uint, token string) error {
	stored, err := s.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if stored != token {
		return ErrInvalidToken
	}
	return s.client.Del(ctx, key(userID)).Err()
}

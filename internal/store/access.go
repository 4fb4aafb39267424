// internal/store/access.go
package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	accessKeyPrefix = "access:"
	usageKeyPrefix  = "usage:"
)

// RedisAccessStore keeps unlimited-access grants keyed by purchaser email.
type RedisAccessStore struct {
	client *redis.Client
}

func NewRedisAccessStore(client *redis.Client) *RedisAccessStore {
	return &RedisAccessStore{client: client}
}

// Grant stores g without expiry, replacing any earlier grant.
func (s *RedisAccessStore) Grant(ctx context.Context, g models.AccessGrant) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal access grant: %w", err)
	}
	if err := s.client.Set(ctx, accessKeyPrefix+g.Email, data, 0).Err(); err != nil {
		return errors.NewAccessCheckFailedError(err)
	}
	return nil
}

// Get returns ErrNotFound when the email has no grant.
func (s *RedisAccessStore) Get(ctx context.Context, email string) (*models.AccessGrant, error) {
	val, err := s.client.Get(ctx, accessKeyPrefix+email).Result()
	if stderrors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.NewAccessCheckFailedError(err)
	}

	var g models.AccessGrant
	if err := json.Unmarshal([]byte(val), &g); err != nil {
		return nil, fmt.Errorf("decode access grant: %w", err)
	}
	return &g, nil
}

// UsageCounter counts free analyses per client id. The counter expires ttl
// after the first analysis.
type UsageCounter struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUsageCounter(client *redis.Client, ttl time.Duration) *UsageCounter {
	return &UsageCounter{client: client, ttl: ttl}
}

func (u *UsageCounter) Count(ctx context.Context, clientID string) (int, error) {
	n, err := u.client.Get(ctx, usageKeyPrefix+clientID).Int()
	if stderrors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.NewAccessCheckFailedError(err)
	}
	return n, nil
}

// Increment records one analysis and returns the new count.
func (u *UsageCounter) Increment(ctx context.Context, clientID string) (int, error) {
	key := usageKeyPrefix + clientID
	n, err := u.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, errors.NewAccessCheckFailedError(err)
	}
	if n == 1 && u.ttl > 0 {
		if err := u.client.Expire(ctx, key, u.ttl).Err(); err != nil {
			return int(n), errors.NewAccessCheckFailedError(err)
		}
	}
	return int(n), nil
}

// Decrement gives back one analysis, used when an increment went over the
// limit.
func (u *UsageCounter) Decrement(ctx context.Context, clientID string) (int, error) {
	n, err := u.client.Decr(ctx, usageKeyPrefix+clientID).Result()
	if err != nil {
		return 0, errors.NewAccessCheckFailedError(err)
	}
	return int(n), nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/ports"
)

// RedisStore is a Redis-backed challenge store for multi-instance
// deployments. GETDEL gives exactly-once consumption across instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a challenge store on an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "docgate:challenge:",
	}
}

var _ ports.ChallengeStore = (*RedisStore)(nil)

// Save records a pending challenge with a TTL matching its expiry.
func (s *RedisStore) Save(ctx context.Context, ch *core.Challenge) error {
	payload, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("%w: marshal challenge: %v", core.ErrStoreOperationFailed, err)
	}
	ttl := time.Until(ch.ExpiresAt)
	if ttl <= 0 {
		return core.ErrChallengeExpired
	}
	if err := s.client.Set(ctx, s.prefix+ch.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return nil
}

// Consume atomically removes and returns a challenge.
func (s *RedisStore) Consume(ctx context.Context, id string) (*core.Challenge, error) {
	payload, err := s.client.GetDel(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Unknown, already consumed, or evicted at expiry.
			return nil, core.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}

	var ch core.Challenge
	if err := json.Unmarshal([]byte(payload), &ch); err != nil {
		return nil, fmt.Errorf("%w: unmarshal challenge: %v", core.ErrStoreOperationFailed, err)
	}
	if time.Now().After(ch.ExpiresAt) {
		return nil, core.ErrChallengeExpired
	}
	return &ch, nil
}

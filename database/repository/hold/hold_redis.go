package holdRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"barkwise/models"
	"barkwise/utils"

	"github.com/go-redis/redis/v8"
)

// RedisHoldStore implements HoldStore on Redis. The key TTL mirrors the
// hold's ExpiresAt so expired holds vanish on their own.
type RedisHoldStore struct {
	client *redis.Client
}

// NewRedisHoldStore creates a HoldStore on the shared hold client.
func NewRedisHoldStore() *RedisHoldStore {
	return &RedisHoldStore{client: utils.GetHoldClient()}
}

func (s *RedisHoldStore) Save(hold *models.BookingHold) error {
	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal booking hold: %w", err)
	}
	ttl := time.Until(hold.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("booking hold %s already expired", hold.ID)
	}
	ctx := context.Background()
	if err := s.client.Set(ctx, utils.HoldKeyPrefix+hold.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save booking hold: %w", err)
	}
	return nil
}

func (s *RedisHoldStore) Get(id string) (*models.BookingHold, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, utils.HoldKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking hold %s: %w", id, err)
	}
	var hold models.BookingHold
	if err := json.Unmarshal([]byte(data), &hold); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking hold: %w", err)
	}
	return &hold, nil
}

func (s *RedisHoldStore) Delete(id string) error {
	ctx := context.Background()
	return s.client.Del(ctx, utils.HoldKeyPrefix+id).Err()
}

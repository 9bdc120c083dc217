package gate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists journal entries in a Redis list, one JSON document
// per entry. Entries carry their schema version, so readers of older
// documents keep working as fields are added.
type RedisStorage struct {
	db  redis.UniversalClient
	key string
}

// NewRedisStorage creates a journal storage appending to the given Redis
// list key. Panics on a nil client - miswiring should prevent startup rather
// than cause runtime errors.
func NewRedisStorage(redisClient redis.UniversalClient, key string) *RedisStorage {
	if redisClient == nil {
		panic("gate: redis client cannot be nil")
	}
	if key == "" {
		key = "gate:journal"
	}
	return &RedisStorage{db: redisClient, key: key}
}

func (s *RedisStorage) Append(ctx context.Context, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("gate: marshal journal entry: %w", err)
	}
	if err := s.db.RPush(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("gate: append journal entry: %w", err)
	}
	return nil
}

func (s *RedisStorage) List(ctx context.Context, limit int) ([]Entry, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	raw, err := s.db.LRange(ctx, s.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("gate: read journal: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("gate: decode journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

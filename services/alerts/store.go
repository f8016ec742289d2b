package alerts

import (
	"context"
	"encoding/json"
	"time"

	"voyago/models"

	"github.com/go-redis/redis/v8"
)

const alertPrefix = "alerts:"

// Store keeps pending travel alerts per user until the client fetches them.
type Store interface {
	Push(ctx context.Context, alert models.TravelAlert) error
	Pending(ctx context.Context, userID string) ([]models.TravelAlert, error)
}

// RedisStore implements Store as a per-user Redis list with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Push(ctx context.Context, alert models.TravelAlert) error {
	b, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	key := alertPrefix + alert.UserID
	if err := s.client.RPush(ctx, key, b).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

// Pending drains and returns the user's queued alerts. Read and delete run
// in one MULTI/EXEC so an alert pushed in between is never lost.
func (s *RedisStore) Pending(ctx context.Context, userID string) ([]models.TravelAlert, error) {
	key := alertPrefix + userID
	pipe := s.client.TxPipeline()
	listed := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	raw, err := listed.Result()
	if err != nil {
		return nil, err
	}

	out := make([]models.TravelAlert, 0, len(raw))
	for _, item := range raw {
		var alert models.TravelAlert
		if err := json.Unmarshal([]byte(item), &alert); err != nil {
			continue
		}
		out = append(out, alert)
	}
	return out, nil
}

// Package session persists conversation sessions between turns. Redis is
// the only cross-turn mutable state besides the session value itself.
package session

import (
	"context"
	"encoding/json"
	"time"

	"voyago/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionPrefix = "chat:sess:"

// Store is the session persistence interface consumed by the chat handler.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.ConversationSession, error)
	Create(ctx context.Context, userID string) (*models.ConversationSession, error)
	Save(ctx context.Context, session *models.ConversationSession) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisStore implements Store on a Redis client with a rolling TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get returns the stored session, or nil when none exists.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.ConversationSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.ConversationSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Create starts a fresh idle session for the user.
func (s *RedisStore) Create(ctx context.Context, userID string) (*models.ConversationSession, error) {
	sess := &models.ConversationSession{
		ID:      uuid.NewString(),
		UserID:  userID,
		State:   models.StateIdle,
		History: []models.ChatTurn{},
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, session *models.ConversationSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+session.ID, b, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}

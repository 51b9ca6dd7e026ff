package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a cart store backed by Redis. Carts expire
// after ttl of inactivity.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func cartKey(session string) string { return "cart:" + session }

func (s *redisStore) Get(ctx context.Context, session string) (map[string]json.RawMessage, error) {
	raw, err := s.client.Get(ctx, cartKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Unparseable session state is treated as an empty cart rather
		// than an error; the next save overwrites it.
		return map[string]json.RawMessage{}, nil
	}
	return entries, nil
}

func (s *redisStore) Save(ctx context.Context, session string, entries map[string]Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(session), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, session string) error {
	if err := s.client.Del(ctx, cartKey(session)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

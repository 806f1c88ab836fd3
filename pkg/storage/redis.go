package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisClient interface {
	GetTouch(ctx context.Context, key string, ttl time.Duration) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID, key string) string
	Ping(ctx context.Context) error
}

// RedisStore persists entries as sf:session:<id>:<key> strings. Reads slide
// the expiry forward so an active visitor's cart does not lapse.
type RedisStore struct {
	client redisClient
	ttl    time.Duration
}

// NewRedisStore wires a RedisStore. A zero ttl keeps keys until removed.
func NewRedisStore(client redisClient, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) GetItem(ctx context.Context, sessionID, key string) (string, bool, error) {
	value, err := r.client.GetTouch(ctx, r.client.SessionKey(sessionID, key), r.ttl)
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisStore) SetItem(ctx context.Context, sessionID, key, value string) error {
	return r.client.Set(ctx, r.client.SessionKey(sessionID, key), value, r.ttl)
}

func (r *RedisStore) RemoveItem(ctx context.Context, sessionID, key string) error {
	return r.client.Del(ctx, r.client.SessionKey(sessionID, key))
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

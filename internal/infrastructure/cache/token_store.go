package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore tracks issued access tokens so they can be revoked before
// their JWT expiry. A token absent from the store is treated as revoked.
type TokenStore interface {
	Store(ctx context.Context, username, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, username, tokenID string) (bool, error)
	Revoke(ctx context.Context, username, tokenID string) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func tokenKey(username, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", username, tokenID)
}

func (s *redisTokenStore) Store(ctx context.Context, username, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(username, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, username, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(username, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, username, tokenID string) error {
	return s.client.Del(ctx, tokenKey(username, tokenID)).Err()
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRefreshTokenNotFound is returned for unknown or expired refresh tokens.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

const refreshKeyPrefix = "refresh:"

// RefreshTokenStore persists opaque refresh tokens with a TTL.
type RefreshTokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type refreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore returns a Redis-backed implementation.
func NewRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	return &refreshTokenStore{client: client}
}

func (s *refreshTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKeyPrefix+token, userID, ttl).Err()
}

func (s *refreshTokenStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, refreshKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrRefreshTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *refreshTokenStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, refreshKeyPrefix+token).Err()
}

package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Coaching-Management-Backend/src/logger"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps server side session state: the current refresh token per
// user and the access tokens revoked at logout. A nil client puts it in
// development mode, where every check passes and writes are skipped.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	if client == nil {
		logger.Warn().Msg("redis not configured, token store running in development mode")
	}
	return &TokenStore{client: client}
}

func refreshKey(userID string) string { return fmt.Sprintf("refresh_token:%s", userID) }

func blacklistKey(token string) string { return fmt.Sprintf("blacklist:%s", token) }

// StoreRefreshToken replaces the user's refresh token.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, userID, refreshToken string, expiresIn time.Duration) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Set(ctx, refreshKey(userID), refreshToken, expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// ValidateRefreshToken reports whether refreshToken is the one currently stored for the user.
func (s *TokenStore) ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (bool, error) {
	if s.client == nil {
		return true, nil
	}
	stored, err := s.client.Get(ctx, refreshKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return stored == refreshToken, nil
}

func (s *TokenStore) DeleteRefreshToken(ctx context.Context, userID string) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// BlacklistToken revokes an access token for the rest of its lifetime.
func (s *TokenStore) BlacklistToken(ctx context.Context, token string, expiresIn time.Duration) error {
	if s.client == nil || expiresIn <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(token), "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (s *TokenStore) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if s.client == nil {
		return false, nil
	}
	n, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) StoreRefreshToken(ctx context.Context, userID, refreshToken string, expiresIn time.Duration) error {
	return m.Called(ctx, userID, refreshToken, expiresIn).Error(0)
}

func (m *SessionStore) ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (bool, error) {
	args := m.Called(ctx, userID, refreshToken)
	return args.Bool(0), args.Error(1)
}

func (m *SessionStore) DeleteRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *SessionStore) BlacklistToken(ctx context.Context, token string, expiresIn time.Duration) error {
	return m.Called(ctx, token, expiresIn).Error(0)
}

func (m *SessionStore) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

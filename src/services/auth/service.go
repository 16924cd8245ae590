package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Coaching-Management-Backend/src/logger"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"
)

// Accounts is the part of the student service that login and refresh rely on.
type Accounts interface {
	Authenticate(ctx context.Context, email, password string) (*models.Student, error)
	Profile(ctx context.Context, userID string) (*models.Student, error)
}

// SessionStore is satisfied by *utils.TokenStore.
type SessionStore interface {
	StoreRefreshToken(ctx context.Context, userID, refreshToken string, expiresIn time.Duration) error
	ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID string) error
	BlacklistToken(ctx context.Context, token string, expiresIn time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type Service struct {
	accounts Accounts
	jwt      *utils.JWTManager
	sessions SessionStore
}

func NewService(accounts Accounts, jwt *utils.JWTManager, sessions SessionStore) *Service {
	return &Service{accounts: accounts, jwt: jwt, sessions: sessions}
}

// Login verifies the credentials and issues an access and refresh token pair.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	student, err := s.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	resp, err := s.issue(ctx, student)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("userId", student.ID.Hex()).Str("role", string(student.Role)).Msg("login")
	return resp, nil
}

// Refresh rotates the refresh token. A token that is not the one currently
// stored for the user is rejected, so each refresh token works once.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	claims, err := s.jwt.ParseJWT(refreshToken, utils.RefreshToken)
	if err != nil {
		return nil, err
	}

	ok, err := s.sessions.ValidateRefreshToken(ctx, claims.UserID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: refresh token revoked or rotated", utils.ErrInvalidToken)
	}

	student, err := s.accounts.Profile(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) || errors.Is(err, utils.ErrInvalidID) {
			return nil, fmt.Errorf("%w: account no longer exists", utils.ErrInvalidToken)
		}
		return nil, err
	}
	if student.RecStatus == models.RecStatusInactive {
		_ = s.sessions.DeleteRefreshToken(ctx, claims.UserID)
		return nil, utils.ErrInactiveAccount
	}

	return s.issue(ctx, student)
}

// Logout revokes the access token for its remaining lifetime and drops the refresh token.
func (s *Service) Logout(ctx context.Context, accessToken string, claims *utils.JWTClaims) error {
	if err := s.sessions.BlacklistToken(ctx, accessToken, s.jwt.RemainingTTL(claims)); err != nil {
		return err
	}
	return s.sessions.DeleteRefreshToken(ctx, claims.UserID)
}

func (s *Service) issue(ctx context.Context, student *models.Student) (*models.LoginResponse, error) {
	access, err := s.jwt.GenerateAccessToken(student)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(student)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.StoreRefreshToken(ctx, student.ID.Hex(), refresh, s.jwt.RefreshTTL()); err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:        access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwt.AccessTTL().Seconds()),
		Student:      student,
	}, nil
}

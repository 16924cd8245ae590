package utils

import (
	"errors"
	"fmt"
	"time"

	"Coaching-Management-Backend/src/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// JWTClaims is a snapshot of non-secret profile fields taken at login.
type JWTClaims struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	StudentID    string    `json:"studentId,omitempty"`
	StudentName  string    `json:"studentname,omitempty"`
	CreatorEmail string    `json:"creatoremail,omitempty"`
	Type         TokenType `json:"type"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		now:        time.Now,
	}
}

func (m *JWTManager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *JWTManager) RefreshTTL() time.Duration { return m.refreshTTL }

func (m *JWTManager) GenerateAccessToken(student *models.Student) (string, error) {
	return m.generate(student, AccessToken, m.accessTTL)
}

func (m *JWTManager) GenerateRefreshToken(student *models.Student) (string, error) {
	return m.generate(student, RefreshToken, m.refreshTTL)
}

func (m *JWTManager) generate(student *models.Student, kind TokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := JWTClaims{
		UserID:       student.ID.Hex(),
		Email:        student.Email,
		Role:         string(student.Role),
		StudentID:    student.StudentID,
		StudentName:  student.StudentName,
		CreatorEmail: student.CreatedBy,
		Type:         kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   student.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// ParseJWT verifies signature, expiry, issuer and token kind.
func (m *JWTManager) ParseJWT(tokenStr string, kind TokenType) (*JWTClaims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: empty token string", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}
	if claims.Type != kind {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, kind)
	}
	return claims, nil
}

// RemainingTTL is how long the token stays valid, zero once expired.
func (m *JWTManager) RemainingTTL(claims *JWTClaims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	if d := claims.ExpiresAt.Time.Sub(m.now()); d > 0 {
		return d
	}
	return 0
}

// IsExpired reports whether err came from an expired token.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}

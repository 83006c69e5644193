// Package auth implements the credential primitives: bcrypt password hashing
// and HS256 access/refresh tokens signed under separate secrets.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the registered claims plus the subject id and email.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"sub_id"`
	Email  string `json:"email,omitempty"`
}

// GenerateToken signs a token for userID that expires after validityDuration.
// Every token gets a random jti so two tokens minted in the same second for
// the same user differ.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString against secretKey and returns its claims.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// TokenManager signs and verifies the two token variants.
type TokenManager struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessValidity, refreshValidity time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:    []byte(accessSecret),
		refreshSecret:   []byte(refreshSecret),
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
	}
}

func (m *TokenManager) SignAccessToken(userID, email string) (string, error) {
	return GenerateToken(userID, email, m.accessSecret, m.accessValidity)
}

func (m *TokenManager) SignRefreshToken(userID, email string) (string, error) {
	return GenerateToken(userID, email, m.refreshSecret, m.refreshValidity)
}

func (m *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return ParseToken(token, m.accessSecret)
}

func (m *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return ParseToken(token, m.refreshSecret)
}

func (m *TokenManager) AccessValidity() time.Duration { return m.accessValidity }

func (m *TokenManager) RefreshValidity() time.Duration { return m.refreshValidity }

package services

import (
	"errors"
	"time"

	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrSecretNotConfigured is returned when no signing secret is set.
	// It is deliberately not a 401: the server is misconfigured.
	ErrSecretNotConfigured = errors.New("JWT secret is not configured")
	// ErrInvalidToken is returned for malformed, tampered or expired tokens.
	ErrInvalidToken = errors.New("token is invalid or expired")
	// ErrMissingClaims is returned when a validly signed token lacks
	// the id, username or role claim.
	ErrMissingClaims = errors.New("token is missing required claims")
)

// Claims carries the identity embedded in an access token.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	secret string
	expiry time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: secret, expiry: expiry}
}

// Issue signs a token for the given identity.
func (s *TokenService) Issue(id, username string, role models.UserRole) (string, error) {
	if s.secret == "" {
		return "", ErrSecretNotConfigured
	}

	now := time.Now()
	claims := Claims{
		ID:       id,
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Verify parses and validates a token, requiring the id, username and
// role claims to be present. The role value itself is judged later by
// the policy evaluator.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if s.secret == "" {
		return nil, ErrSecretNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ID == "" || claims.Username == "" || claims.Role == "" {
		return nil, ErrMissingClaims
	}

	return claims, nil
}

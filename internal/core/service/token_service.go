package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hrsuite/hr-backend/internal/core/domain"
)

const refreshTokenBytes = 32

// TokenConfig is the process-wide signing configuration. It is built once at
// startup and never mutated afterwards.
type TokenConfig struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessTTL time.Duration
}

// TokenService issues signed access tokens and opaque refresh tokens.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 2 * time.Hour
	}
	return &TokenService{cfg: cfg}
}

// IssueAccessToken returns an HS256 JWT carrying the user's id, email and
// role, bound to the configured issuer and audience.
func (s *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   strconv.Itoa(user.ID),
		"email": user.Email,
		"role":  string(user.Role),
		"iss":   s.cfg.Issuer,
		"aud":   s.cfg.Audience,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.AccessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.Secret))
}

// IssueRefreshToken returns a base64 string of 32 bytes of fresh randomness.
// It carries no user data; the binding to a user happens when the auth
// service stores it on the record.
func (s *TokenService) IssueRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("refresh token entropy: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

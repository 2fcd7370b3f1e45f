package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrsuite/hr-backend/internal/core/domain"
	"github.com/hrsuite/hr-backend/internal/core/ports"
)

// LoginThrottle abstracts the brute-force limiter (Redis).
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// AuthService implements login, refresh-token rotation and logout.
type AuthService struct {
	repo       ports.UserRepository
	tokens     ports.TokenIssuer
	throttle   LoginThrottle
	refreshTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

// NewAuthService wires the auth engine. throttle may be nil to disable
// login rate limiting.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, throttle LoginThrottle, refreshTTL time.Duration, log zerolog.Logger) *AuthService {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		throttle:   throttle,
		refreshTTL: refreshTTL,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Login verifies the credentials and opens a session. Unknown email and
// wrong password produce the identical error so callers cannot enumerate
// accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, processing anyway")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return pair, nil
}

// Refresh rotates the session's refresh token. The supplied token is single
// use: it must exactly match the stored one and the stored expiry must be
// strictly in the future. The rotation itself is a conditional swap on the
// old value, so two concurrent calls with the same token produce exactly
// one winner.
func (s *AuthService) Refresh(ctx context.Context, userID int, refreshToken string) (*ports.TokenPair, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, err
	}

	if refreshToken == "" || user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, domain.ErrInvalidRefreshToken
	}
	if !user.HasActiveSession(s.now()) {
		return nil, domain.ErrInvalidRefreshToken
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	next, err := s.tokens.IssueRefreshToken()
	if err != nil {
		return nil, err
	}

	expiry := s.now().Add(s.refreshTTL)
	if err := s.repo.RotateRefreshToken(ctx, user.ID, refreshToken, next, expiry); err != nil {
		return nil, err
	}

	s.log.Debug().Int("user_id", user.ID).Msg("refresh token rotated")
	return &ports.TokenPair{UserID: user.ID, AccessToken: accessToken, RefreshToken: next}, nil
}

// Logout terminates the caller's session. A missing identity or an identity
// that resolves to no user is an auth failure, never a silent no-op.
func (s *AuthService) Logout(ctx context.Context, principal domain.Principal) error {
	if principal.UserID <= 0 {
		return domain.ErrUnauthenticated
	}

	if _, err := s.repo.FindByID(ctx, principal.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthenticated
		}
		return err
	}

	if err := s.repo.ClearRefreshToken(ctx, principal.UserID); err != nil {
		return err
	}

	s.log.Info().Int("user_id", principal.UserID).Msg("logout")
	return nil
}

// openSession issues a fresh token pair and stores the refresh side on the
// user record, replacing any previous session slot.
func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken()
	if err != nil {
		return nil, err
	}

	expiry := s.now().Add(s.refreshTTL)
	if err := s.repo.SetRefreshToken(ctx, user.ID, refreshToken, expiry); err != nil {
		return nil, err
	}

	return &ports.TokenPair{UserID: user.ID, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

package ports

import (
	"context"

	"github.com/hrsuite/hr-backend/internal/core/domain"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	UserID       int    `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenIssuer mints credentials. Access tokens are signed and time-boxed;
// refresh tokens are opaque randomness with no user data embedded.
type TokenIssuer interface {
	IssueAccessToken(user *domain.User) (string, error)
	IssueRefreshToken() (string, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, userID int, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, principal domain.Principal) error
}

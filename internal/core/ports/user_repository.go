package ports

import (
	"context"
	"time"

	"github.com/hrsuite/hr-backend/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
//
// The three refresh-slot methods exist so the auth service never has to
// read-modify-write the whole record for session changes:
// RotateRefreshToken is conditional on the current token value, giving
// exactly one winner when two refresh calls race on the same user.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int) error
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	EmailIsUnique(ctx context.Context, email string) (bool, error)
	IDIsUnique(ctx context.Context, id int) (bool, error)

	SetRefreshToken(ctx context.Context, userID int, token string, expiry time.Time) error
	RotateRefreshToken(ctx context.Context, userID int, current, next string, expiry time.Time) error
	ClearRefreshToken(ctx context.Context, userID int) error
}

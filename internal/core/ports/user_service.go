package ports

import (
	"context"

	"github.com/hrsuite/hr-backend/internal/core/domain"
)

// RegisterInput carries self-service customer registration data.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// EmployeeDetail carries the full identifying detail of an employee record.
// On delete it doubles as the operator's confirmation of identity.
type EmployeeDetail struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Role      string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id int) error

	CreateEmployee(ctx context.Context, in EmployeeDetail) (*domain.User, error)
	UpdateEmployee(ctx context.Context, in EmployeeDetail) (*domain.User, error)
	DeleteEmployee(ctx context.Context, in EmployeeDetail) error
	ListEmployees(ctx context.Context) ([]domain.User, error)
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrsuite/hr-backend/internal/core/domain"
	"github.com/hrsuite/hr-backend/internal/core/ports"
)

// placeholderPasswordHash is assigned to freshly created employee accounts.
// It is not a bcrypt digest, so no password can ever verify against it;
// credentials are set through an out-of-band setup flow.
const placeholderPasswordHash = "!credential-setup-pending"

const minPasswordLength = 8

// UserService implements customer registration and the role-gated employee
// lifecycle.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Register creates a self-service customer account.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	unique, err := s.repo.EmailIsUnique(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", created.ID).Msg("customer registered")
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetUsers(ctx context.Context) ([]domain.User, error) {
	roles := []domain.Role{domain.RoleCustomer, domain.RoleEmployee, domain.RoleManager, domain.RoleAdmin}
	var all []domain.User
	for _, role := range roles {
		users, err := s.repo.ListByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		all = append(all, users...)
	}
	return all, nil
}

// DeleteUser removes an account by id with no role guard. This is the plain
// user path; employee deletion goes through DeleteEmployee.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("user_id", id).Msg("user deleted")
	return nil
}

// CreateEmployee provisions a staff account. The role is always Employee no
// matter what the caller supplied, and the password hash is a placeholder
// until the credential-setup flow runs.
func (s *UserService) CreateEmployee(ctx context.Context, in ports.EmployeeDetail) (*domain.User, error) {
	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: placeholderPasswordHash,
		Role:         domain.RoleEmployee,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", created.ID).Str("email", created.Email).Msg("employee created")
	return created, nil
}

// UpdateEmployee overwrites an employee's identifying details and role.
// Customer accounts are never reachable through this path, and the requested
// role must be one of the staff roles.
func (s *UserService) UpdateEmployee(ctx context.Context, in ports.EmployeeDetail) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if user.Role == domain.RoleCustomer {
		return nil, domain.ErrCustomerRole
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if !role.IsStaff() {
		return nil, domain.ErrInvalidRole
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email
	user.Role = role
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", user.ID).Str("role", string(role)).Msg("employee updated")
	return user, nil
}

// DeleteEmployee removes a staff account. The caller must restate the stored
// first name, last name and email exactly; a mismatch aborts the delete so
// an id typo cannot take out the wrong account.
func (s *UserService) DeleteEmployee(ctx context.Context, in ports.EmployeeDetail) error {
	user, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return err
	}

	if user.Role == domain.RoleCustomer {
		return domain.ErrCustomerRole
	}

	if user.FirstName != in.FirstName || user.LastName != in.LastName || user.Email != in.Email {
		return domain.ErrDetailMismatch
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info().Int("user_id", user.ID).Msg("employee deleted")
	return nil
}

func (s *UserService) ListEmployees(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListByRole(ctx, domain.RoleEmployee)
}

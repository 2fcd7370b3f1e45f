package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrsuite/hr-backend/internal/core/domain"
	"github.com/hrsuite/hr-backend/internal/core/ports"
)

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Alice",
		LastName:  "Wonder",
		Email:     "alice@wonder.com",
		Password:  "longenough",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected Customer role, got %s", user.Role)
	}
	if user.PasswordHash == "longenough" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_ShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.com", Password: "1234567"})
	if err != domain.ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 1, Email: "taken@hrs.com", Role: domain.RoleCustomer})
	svc := NewUserService(repo, zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "taken@hrs.com", Password: "longenough"})
	if err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_CreateEmployee_ForcesEmployeeRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.CreateEmployee(context.Background(), ports.EmployeeDetail{
		FirstName: "Alice",
		LastName:  "Wonder",
		Email:     "alice@wonder.com",
		Role:      "Admin", // must be ignored
	})
	if err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	if created.Role != domain.RoleEmployee {
		t.Fatalf("expected forced Employee role, got %s", created.Role)
	}
	if created.PasswordHash == "" {
		t.Fatalf("expected placeholder password hash")
	}
	// Nothing may ever verify against the placeholder.
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("")) == nil {
		t.Fatalf("placeholder hash must not verify any password")
	}
}

func TestUserService_UpdateEmployee_RoleChange(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 2, FirstName: "Evan", LastName: "Jasper", Email: "evan@hrs.com", Role: domain.RoleEmployee})
	svc := NewUserService(repo, zerolog.Nop())

	updated, err := svc.UpdateEmployee(context.Background(), ports.EmployeeDetail{
		ID: 2, FirstName: "Evan", LastName: "Jasper", Email: "evan@hrs.com", Role: "Manager",
	})
	if err != nil {
		t.Fatalf("update employee failed: %v", err)
	}
	if updated.Role != domain.RoleManager {
		t.Fatalf("expected Manager, got %s", updated.Role)
	}

	stored, _ := repo.FindByID(context.Background(), 2)
	if stored.Role != domain.RoleManager {
		t.Fatalf("role change not persisted")
	}
}

func TestUserService_UpdateEmployee_CustomerIsProtected(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 3, FirstName: "Feri", LastName: "Shen", Email: "feri@hrs.com", Role: domain.RoleCustomer})
	svc := NewUserService(repo, zerolog.Nop())

	for _, role := range []string{"Employee", "Manager", "Admin"} {
		_, err := svc.UpdateEmployee(context.Background(), ports.EmployeeDetail{
			ID: 3, FirstName: "Feri", LastName: "Shen", Email: "feri@hrs.com", Role: role,
		})
		if err != domain.ErrCustomerRole {
			t.Fatalf("role %s: expected ErrCustomerRole, got %v", role, err)
		}
	}
}

func TestUserService_UpdateEmployee_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 2, FirstName: "Evan", LastName: "Jasper", Email: "evan@hrs.com", Role: domain.RoleEmployee})
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.UpdateEmployee(context.Background(), ports.EmployeeDetail{ID: 2, Role: "Superuser"}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole for unknown role, got %v", err)
	}
	// Customer parses, but is not a staff role this path may assign.
	if _, err := svc.UpdateEmployee(context.Background(), ports.EmployeeDetail{ID: 2, Role: "Customer"}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole for Customer target role, got %v", err)
	}
}

func TestUserService_UpdateEmployee_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.UpdateEmployee(context.Background(), ports.EmployeeDetail{ID: 99, Role: "Employee"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_DeleteEmployee_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 2, FirstName: "Evan", LastName: "Jasper", Email: " ", Role: domain.RoleEmployee})
	svc := NewUserService(repo, zerolog.Nop())

	err := svc.DeleteEmployee(context.Background(), ports.EmployeeDetail{
		ID: 2, FirstName: "Evan", LastName: "Jasper", Email: " ", Role: "Employee",
	})
	if err != nil {
		t.Fatalf("delete employee failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), 2); err != domain.ErrUserNotFound {
		t.Fatalf("expected record removed, got %v", err)
	}
}

func TestUserService_DeleteEmployee_AdminTarget(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 5, FirstName: "Ada", LastName: "Boss", Email: "ada@hrs.com", Role: domain.RoleAdmin})
	svc := NewUserService(repo, zerolog.Nop())

	err := svc.DeleteEmployee(context.Background(), ports.EmployeeDetail{
		ID: 5, FirstName: "Ada", LastName: "Boss", Email: "ada@hrs.com", Role: "Admin",
	})
	if err != nil {
		t.Fatalf("delete admin failed: %v", err)
	}
}

func TestUserService_DeleteEmployee_DetailMismatch(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 2, FirstName: "Evan", LastName: "Jasper", Email: " ", Role: domain.RoleEmployee})
	svc := NewUserService(repo, zerolog.Nop())

	err := svc.DeleteEmployee(context.Background(), ports.EmployeeDetail{
		ID: 2, FirstName: "Wrong", LastName: "Jasper", Email: " ", Role: "Employee",
	})
	if err != domain.ErrDetailMismatch {
		t.Fatalf("expected ErrDetailMismatch, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), 2); err != nil {
		t.Fatalf("record must survive a mismatched delete: %v", err)
	}
}

func TestUserService_DeleteEmployee_CustomerIsProtected(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 3, FirstName: "Feri", LastName: "Shen", Email: "feri@hrs.com", Role: domain.RoleCustomer})
	svc := NewUserService(repo, zerolog.Nop())

	err := svc.DeleteEmployee(context.Background(), ports.EmployeeDetail{
		ID: 3, FirstName: "Feri", LastName: "Shen", Email: "feri@hrs.com", Role: "Customer",
	})
	if err != domain.ErrCustomerRole {
		t.Fatalf("expected ErrCustomerRole, got %v", err)
	}
}

func TestUserService_DeleteEmployee_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	if err := svc.DeleteEmployee(context.Background(), ports.EmployeeDetail{ID: 404}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_DeleteUser_NoRoleGuard(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 3, FirstName: "Feri", LastName: "Shen", Email: "feri@hrs.com", Role: domain.RoleCustomer})
	svc := NewUserService(repo, zerolog.Nop())

	if err := svc.DeleteUser(context.Background(), 3); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), 3); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for second delete, got %v", err)
	}
}

func TestUserService_ListEmployees_FiltersByRole(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: 1, FirstName: "Krit", LastName: "Handsome", Email: "k@hrs.com", Role: domain.RoleEmployee})
	repo.seed(&domain.User{ID: 2, FirstName: "Evan", LastName: "Jasper", Email: "e@hrs.com", Role: domain.RoleEmployee})
	repo.seed(&domain.User{ID: 3, FirstName: "Feri", LastName: "Shen", Email: "f@hrs.com", Role: domain.RoleCustomer})
	svc := NewUserService(repo, zerolog.Nop())

	employees, err := svc.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("list employees failed: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	for _, e := range employees {
		if e.Role != domain.RoleEmployee {
			t.Fatalf("unexpected role in employee list: %s", e.Role)
		}
	}
}

package domain

import (
	"errors"
	"time"
)

// Role represents the access level of a user account.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

var ErrInvalidCredentials = errors.New("email or password is incorrect")
var ErrInvalidRefreshToken = errors.New("invalid refresh token")
var ErrUnauthenticated = errors.New("authentication required")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrCustomerRole = errors.New("customer accounts cannot be managed as employees")
var ErrInvalidRole = errors.New("unrecognized role")
var ErrDetailMismatch = errors.New("employee details do not match the stored record")
var ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ParseRole converts a role string into a Role. Unrecognized values are a
// caller error, never a silent default.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleManager:
		return RoleManager, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// IsStaff reports whether the role belongs to the protected employee set.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleManager || r == RoleAdmin
}

// User models an account in the system. RefreshToken and RefreshTokenExpiry
// hold the single active session slot and are always set or cleared together.
type User struct {
	ID                 int        `json:"id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	IsVerified         bool       `json:"is_verified"`
	Role               Role       `json:"role"`
	RefreshToken       *string    `json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// HasActiveSession reports whether the user holds a refresh token that is
// still valid at the given instant. An expiry exactly equal to now counts
// as expired.
func (u *User) HasActiveSession(now time.Time) bool {
	return u.RefreshToken != nil && u.RefreshTokenExpiry != nil && u.RefreshTokenExpiry.After(now)
}

// Principal is the resolved identity of the caller, extracted from the
// access token by the routing layer and handed to the services explicitly.
type Principal struct {
	UserID int
	Email  string
	Role   Role
}

package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when the email is already registered.
	ErrDuplicate = errors.New("email already registered")
	// ErrValidation is returned on malformed input.
	ErrValidation = errors.New("validation failed")
)

// Roles understood by the authorization middleware.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a staff account. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may perform destructive operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

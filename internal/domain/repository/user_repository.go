package repository

import (
	"context"
	"errors"

	"github.com/okasatria/go-auth-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a write collides with the email
	// uniqueness constraint.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines the interface for user-related database operations.
// Implementations must enforce email uniqueness with a storage-level
// constraint and report violations as ErrEmailTaken, so a
// check-then-insert race still surfaces as a duplicate-email error.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateEmail persists a new email for the user.
	UpdateEmail(ctx context.Context, id, email string) (*entity.User, error)
	// EmailTaken reports whether another user (excluding excludeID, which
	// may be empty) already owns the email.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	// SearchByEmail returns up to limit users whose email contains q as a
	// case-insensitive substring, in a stable order.
	SearchByEmail(ctx context.Context, q string, limit int) ([]entity.User, error)
}

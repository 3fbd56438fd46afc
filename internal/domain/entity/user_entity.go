package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash; the plaintext
// never leaves the registration/login request scope.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time
	LastLogin    *time.Time
}

// PublicUser is the only user representation exposed over the API.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public reduces the user to its exposable fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// NormalizeEmail trims surrounding whitespace and lowercases the whole
// address. Every write path (registration, profile update, seeding) and
// every lookup goes through this, so there is exactly one user per
// normalized email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

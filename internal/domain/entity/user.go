// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a single account. Accounts are created either through
// password registration or on first sign-in through an external identity
// provider; in the latter case PasswordHash stays empty.
type User struct {
	ID           uuid.UUID // Store-generated identifier for the account.
	Name         string    // Display name.
	Email        string    // Login identifier, unique across the store.
	PasswordHash string    // bcrypt hash of the password. Empty for OAuth-only accounts. Never serialized.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether this account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

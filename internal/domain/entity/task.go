package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single todo item owned by one user. UserID is a plain reference,
// not an ownership constraint: the owning account may be deleted while the
// task remains.
type Task struct {
	ID        uuid.UUID // Store-generated identifier.
	Title     string    // Short label, required.
	Todo      string    // Body text, required.
	UserID    uuid.UUID // Owning account.
	CreatedOn time.Time // Set once at creation, immutable afterwards.
}

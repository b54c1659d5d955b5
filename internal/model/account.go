package model

import (
	"time"

	"github.com/google/uuid"
)

// Account is a plain value; hashing happens in the write path that
// creates or rotates the secret, never on the entity itself.
type Account struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	SecretDigest string     `json:"-"`
	IsAdmin      bool       `json:"isAdmin"`
	IsActive     bool       `json:"isActive"`
	IsDeleted    bool       `json:"-"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// AccountRef is the public owner reference embedded in expanded tasks
// and in the user directory. The secret digest never leaves the model.
type AccountRef struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

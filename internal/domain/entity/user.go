// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Field limits shared by validation and storage.
const (
	UsernameMaxLength = 100
	EmailMaxLength    = 100
)

// User is an account that can sign in and own products.
type User struct {
	ID           uuid.UUID `json:"id"`        // The Global Unique Identifier (GUID) for the user.
	Username     string    `json:"username"`  // Unique login name.
	Email        string    `json:"email"`     // Unique contact address, used for password resets.
	PasswordHash string    `json:"-"`         // bcrypt hash, never serialized.
	CreatedAt    time.Time `json:"createdAt"` // Timestamp of when this user account was created.
	UpdatedAt    time.Time `json:"updatedAt"` // Timestamp of the last modification to this user's data.
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core identity in the system. It carries the login credential
// (email + password hash) together with the verification and activity flags
// that gate what the holder is allowed to do.
type Account struct {
	ID           uuid.UUID  // The unique identifier for the account.
	Email        string     // The account's email, used as the login identifier. Unique.
	PasswordHash string     // The bcrypt hash of the account's password. Never the plaintext.
	Name         string     // Optional display name.
	IsActive     bool       // Inactive accounts cannot authenticate or act.
	IsVerified   bool       // Whether the email address has been confirmed.
	VerifiedAt   *time.Time // When the email was confirmed, nil until then.
	CreatedAt    time.Time  // Timestamp of when this account was created.
	UpdatedAt    time.Time  // Timestamp of the last modification to this account.
}

// TokenPair is the credential set handed to a client after a successful login
// or refresh-token rotation.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

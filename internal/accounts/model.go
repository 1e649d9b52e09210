// Package accounts holds the local account table and the store that
// enforces the single-active-session invariant.
package accounts

import "time"

// Account is a locally registered user. At most one account has
// IsActive=true at any observable instant; the repository owns that
// invariant.
type Account struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries the mutable profile fields for a partial update.
// A nil field is left unchanged. Email and IsActive are deliberately not
// here: email uniqueness and activation go through their own operations.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

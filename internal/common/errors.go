// Package common contains shared sentinel errors and small utilities used
// across the Moneta core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors, rejected before any storage access.
	ErrValidation = errors.New("validation failed")

	// Uniqueness / lookup errors.
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("not found")

	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionBusy        = errors.New("authentication already in progress")
	ErrNotLoggedIn        = errors.New("no active account")

	// External collaborator / persistence errors. Scheduling failures are
	// non-fatal and never suppress the local notification log; storage
	// write failures always surface to the caller.
	ErrScheduling = errors.New("trigger registration failed")
	ErrStorage    = errors.New("storage failure")
)

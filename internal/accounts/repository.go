package accounts

import "context"

// Repository is the storage port for accounts.
//
// Email matching is byte-exact (case-sensitive as stored); uniqueness is
// enforced at write time by the store, not assumed by callers. Lookups
// return common.ErrNotFound when nothing matches. All mutating operations
// are all-or-nothing.
type Repository interface {
	// Create inserts a new inactive account. Fails with
	// common.ErrDuplicateEmail when the email is already registered; the
	// uniqueness check and the insert are atomic.
	Create(ctx context.Context, a *Account) (*Account, error)

	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindActive returns the single active account, or common.ErrNotFound.
	FindActive(ctx context.Context) (*Account, error)

	// Activate deactivates every other account and activates the target in
	// one transaction. No reader ever observes two active accounts, nor a
	// committed state with none while a login is settling.
	Activate(ctx context.Context, id string) error

	Deactivate(ctx context.Context, id string) error
	DeactivateAll(ctx context.Context) error

	// UpdateProfile applies a partial update of the mutable profile fields.
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error

	Delete(ctx context.Context, id string) error
}

// Package session orchestrates login, registration, logout, and profile
// operations over the account store. It owns the {LoggedOut,
// Authenticating, LoggedIn} state machine; a second authentication attempt
// while one is in flight is rejected with common.ErrSessionBusy so two
// logins can never race to activate two different accounts.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/moneta-app/moneta/internal/accounts"
	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/cryptox"
	"github.com/moneta-app/moneta/internal/kvstore"
	"github.com/moneta-app/moneta/internal/logging"
)

// State is the session machine state.
type State int

const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateLoggedIn
)

const minPasswordLen = 6

// lastAccountKey remembers the most recently authenticated account so
// biometric quick-access can re-activate it without a password.
const lastAccountKey = "last_account_id"

// Options holds session policy switches.
type Options struct {
	// AutoProvisionOnUnknownEmail makes Login create and activate a
	// placeholder account when the email is unknown, instead of failing
	// with ErrInvalidCredentials. Matches the historical behavior; turn it
	// off to require registration first.
	AutoProvisionOnUnknownEmail bool
}

// Manager is the session orchestrator. All state transitions serialize
// through its mutex; the slow parts (hashing, biometric prompt, store
// writes) run outside the lock while the machine sits in
// StateAuthenticating.
type Manager struct {
	repo      accounts.Repository
	hasher    cryptox.PasswordHasher
	biometric BiometricAuthenticator
	kv        kvstore.Store
	log       logging.Logger
	opts      Options

	mu      sync.Mutex
	state   State
	current *accounts.Account
}

func NewManager(
	repo accounts.Repository,
	hasher cryptox.PasswordHasher,
	biometric BiometricAuthenticator,
	kv kvstore.Store,
	log logging.Logger,
	opts Options,
) *Manager {
	return &Manager{
		repo:      repo,
		hasher:    hasher,
		biometric: biometric,
		kv:        kv,
		log:       log.With("component", "session"),
		opts:      opts,
	}
}

// State returns the current machine state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns a copy of the logged-in account, or nil.
func (m *Manager) Current() *accounts.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	c := *m.current
	return &c
}

// beginAuth moves the machine into StateAuthenticating, rejecting a second
// in-flight attempt.
func (m *Manager) beginAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticating {
		return common.ErrSessionBusy
	}
	m.state = StateAuthenticating
	return nil
}

// finishAuth settles the machine. A non-nil account means the attempt
// succeeded; otherwise the previous session (if any) is restored.
func (m *Manager) finishAuth(acc *accounts.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc != nil {
		m.current = acc
		m.state = StateLoggedIn
		return
	}
	if m.current != nil {
		m.state = StateLoggedIn
	} else {
		m.state = StateLoggedOut
	}
}

func validateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: malformed email", common.ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password shorter than %d characters",
			common.ErrValidation, minPasswordLen)
	}
	return nil
}

// Login authenticates email/password against the store and activates the
// matching account. With Options.AutoProvisionOnUnknownEmail an unknown
// email creates and activates a placeholder account instead of failing.
func (m *Manager) Login(ctx context.Context, email, password string) (*accounts.Account, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if err := m.beginAuth(); err != nil {
		return nil, err
	}

	acc, err := m.authenticate(ctx, email, []byte(password))
	m.finishAuth(acc)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (m *Manager) authenticate(ctx context.Context, email string, password []byte) (*accounts.Account, error) {
	acc, err := m.repo.FindByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		if !m.opts.AutoProvisionOnUnknownEmail {
			return nil, common.ErrInvalidCredentials
		}
		return m.provision(ctx, email, password)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find account: %w", common.ErrStorage, err)
	}

	ok, err := m.hasher.Verify(password, acc.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	if err := m.activate(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// provision creates and activates a placeholder account for an unknown
// email. The name is derived from the email local part; the supplied
// password becomes the account credential so the next login verifies.
func (m *Manager) provision(ctx context.Context, email string, password []byte) (*accounts.Account, error) {
	hash, err := m.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}

	acc, err := m.repo.Create(ctx, &accounts.Account{
		Email:        email,
		FirstName:    local,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	m.log.Info(ctx, "auto-provisioned account for unknown email", "account_id", acc.ID)

	if err := m.activate(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (m *Manager) activate(ctx context.Context, acc *accounts.Account) error {
	if err := m.repo.Activate(ctx, acc.ID); err != nil {
		return fmt.Errorf("%w: activate account %s: %w", common.ErrStorage, acc.ID, err)
	}
	acc.IsActive = true
	m.rememberAccount(ctx, acc.ID)
	return nil
}

// rememberAccount records the account for biometric quick-access.
// Best-effort: a write failure only degrades biometric login.
func (m *Manager) rememberAccount(ctx context.Context, id string) {
	if err := m.kv.Set(ctx, lastAccountKey, []byte(id)); err != nil {
		m.log.Warn(ctx, "failed to remember last account", "account_id", id, "err", err)
	}
}

// Register validates the input, creates the account, and activates it.
// Registration implies login.
func (m *Manager) Register(ctx context.Context, firstName, lastName, email, phone, password string) (*accounts.Account, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", common.ErrValidation)
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if err := m.beginAuth(); err != nil {
		return nil, err
	}

	acc, err := m.register(ctx, firstName, lastName, email, phone, []byte(password))
	m.finishAuth(acc)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (m *Manager) register(ctx context.Context, firstName, lastName, email, phone string, password []byte) (*accounts.Account, error) {
	hash, err := m.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	acc, err := m.repo.Create(ctx, &accounts.Account{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	if err := m.activate(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Logout deactivates every account and clears the in-memory session.
// Logging out while already logged out is a no-op success.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.repo.DeactivateAll(ctx); err != nil {
		return fmt.Errorf("%w: deactivate accounts: %w", common.ErrStorage, err)
	}

	m.mu.Lock()
	m.current = nil
	m.state = StateLoggedOut
	m.mu.Unlock()
	return nil
}

// LoginWithBiometric asks the external authenticator for a yes/no and, on
// yes, re-activates the most recently authenticated account without a
// password.
func (m *Manager) LoginWithBiometric(ctx context.Context, reason string) (*accounts.Account, error) {
	if err := m.beginAuth(); err != nil {
		return nil, err
	}

	acc, err := m.biometricLogin(ctx, reason)
	m.finishAuth(acc)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (m *Manager) biometricLogin(ctx context.Context, reason string) (*accounts.Account, error) {
	ok, err := m.biometric.Authenticate(ctx, reason)
	if err != nil {
		return nil, fmt.Errorf("%w: biometric: %w", common.ErrInvalidCredentials, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: biometric rejected", common.ErrInvalidCredentials)
	}

	id, err := m.kv.Get(ctx, lastAccountKey)
	if err != nil {
		// read-path failure degrades to "nothing remembered"
		m.log.Warn(ctx, "failed to read last account", "err", err)
		id = nil
	}
	if len(id) == 0 {
		return nil, fmt.Errorf("%w: no remembered account", common.ErrNotFound)
	}

	acc, err := m.repo.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	if err := m.activate(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// UpdateProfile applies a partial profile update to the active account and
// returns the refreshed account.
func (m *Manager) UpdateProfile(ctx context.Context, upd accounts.ProfileUpdate) (*accounts.Account, error) {
	cur := m.Current()
	if cur == nil {
		return nil, common.ErrNotLoggedIn
	}

	if err := m.repo.UpdateProfile(ctx, cur.ID, upd); err != nil {
		return nil, err
	}

	acc, err := m.repo.FindByID(ctx, cur.ID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = acc
	m.mu.Unlock()

	c := *acc
	return &c, nil
}

// DeleteAccount deletes the active account and clears the session.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	cur := m.Current()
	if cur == nil {
		return common.ErrNotLoggedIn
	}

	if err := m.repo.Delete(ctx, cur.ID); err != nil {
		return err
	}

	if err := m.kv.Delete(ctx, lastAccountKey); err != nil {
		m.log.Warn(ctx, "failed to forget deleted account", "account_id", cur.ID, "err", err)
	}

	m.mu.Lock()
	m.current = nil
	m.state = StateLoggedOut
	m.mu.Unlock()
	return nil
}

package session

import "context"

// BiometricAuthenticator is the external yes/no authentication oracle.
// The surrounding app supplies the real sensor-backed implementation; the
// core never touches sensor APIs.
type BiometricAuthenticator interface {
	// Authenticate prompts with reason and reports whether the user passed.
	// A non-nil error means the prompt itself failed.
	Authenticate(ctx context.Context, reason string) (bool, error)
}

// StubAuthenticator answers every prompt with a fixed verdict. Used by the
// CLI and by tests.
type StubAuthenticator struct {
	Allow bool
}

func (s StubAuthenticator) Authenticate(ctx context.Context, reason string) (bool, error) {
	return s.Allow, nil
}

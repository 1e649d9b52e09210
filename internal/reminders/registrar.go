package reminders

import (
	"context"
	"sync"

	"github.com/moneta-app/moneta/internal/common"
)

// Registrar is the external OS-level alarm system. Register is treated as a
// possibly-slow, possibly-failing call; the scheduler bounds it with a
// timeout. Unregister cancels a recurring trigger by the id Register
// returned.
type Registrar interface {
	Register(ctx context.Context, t Trigger) (string, error)
	Unregister(ctx context.Context, id string) error
}

// InMemoryRegistrar is the reference Registrar used by the CLI and tests.
type InMemoryRegistrar struct {
	mu       sync.Mutex
	triggers map[string]Trigger
}

func NewInMemoryRegistrar() *InMemoryRegistrar {
	return &InMemoryRegistrar{triggers: make(map[string]Trigger)}
}

func (r *InMemoryRegistrar) Register(ctx context.Context, t Trigger) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers[t.ID] = t
	return t.ID, nil
}

func (r *InMemoryRegistrar) Unregister(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.triggers[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.triggers, id)
	return nil
}

// Registered reports whether a trigger with id is currently registered.
func (r *InMemoryRegistrar) Registered(id string) (Trigger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.triggers[id]
	return t, ok
}

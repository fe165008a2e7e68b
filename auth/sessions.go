package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type (
	// SessionRegistry is the process-wide set of tokens that are currently
	// allowed through the gate. Membership is the only authority: there is
	// no expiry, no per-session user binding and no removal. Both methods
	// must be safe for any number of concurrent requests.
	SessionRegistry interface {
		Save(ctx context.Context, token string) error
		Lookup(ctx context.Context, token string) (bool, error)
	}

	memSessions struct {
		mu     sync.RWMutex
		active map[string]struct{}
	}
)

// InMemorySessions returns a registry backed by a plain set behind a
// reader/writer lock. Lookups share the read lock, Save takes the write
// lock only for the insertion itself. Entries live until the process exits.
func InMemorySessions() SessionRegistry {
	return &memSessions{
		active: make(map[string]struct{}),
	}
}

func (m *memSessions) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[token] = struct{}{}
	return nil
}

func (m *memSessions) Lookup(_ context.Context, token string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, found := m.active[token]
	return found, nil
}

// NewSessionToken mints a fresh opaque session identifier. Each call must
// produce an independently unpredictable value, a repeated or constant
// token would let anyone walk through the gate.
func NewSessionToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("unable to generate session token, cause %w", err)
	}
	return id.String(), nil
}

// ABOUTME: Session provider that loads, saves, and clears the signed-in session
// ABOUTME: Sessions not marked to be remembered are held in memory only

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Provider reads and writes the session blob through a Store
type Provider struct {
	store Store

	mu   sync.Mutex
	held *Data
}

// NewProvider creates a provider backed by store
func NewProvider(store Store) *Provider {
	return &Provider{store: store}
}

// Store returns the underlying store
func (p *Provider) Store() Store {
	return p.store
}

// Load returns the current session, or nil when nobody is signed in.
// A malformed persisted blob counts as no session.
func (p *Provider) Load(ctx context.Context) (*State, error) {
	p.mu.Lock()
	held := p.held
	p.mu.Unlock()
	if held != nil {
		return NewState(*held), nil
	}

	raw, err := p.store.Get(ctx, Key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		slog.Warn("Ignoring malformed session", "key", Key, "error", err)
		return nil, nil
	}
	return NewState(data), nil
}

// Save persists a session so later runs see it
func (p *Provider) Save(ctx context.Context, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := p.store.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	p.mu.Lock()
	p.held = nil
	p.mu.Unlock()
	slog.Debug("Session saved", "email", data.User.Email, "role", data.Role)
	return nil
}

// Hold keeps a session for this process only
func (p *Provider) Hold(data *Data) {
	p.mu.Lock()
	defer p.mu.Unlock()
	held := *data
	p.held = &held
	slog.Debug("Session held in memory", "email", data.User.Email)
}

// Clear signs out: drops the held session and deletes the persisted one
func (p *Provider) Clear(ctx context.Context) error {
	p.mu.Lock()
	p.held = nil
	p.mu.Unlock()
	if err := p.store.Delete(ctx, Key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

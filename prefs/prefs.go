// Package prefs stores each user's preferred measurement unit.
package prefs

import (
	"context"
	"sync"

	"cocktails/catalog"
)

// PreferenceKey is the fixed key the unit preference is stored under.
const PreferenceKey = "cocktail-measurement-unit"

// DefaultUnit is used when a user has no stored preference.
const DefaultUnit = catalog.UnitOz

// Store persists one unit per user. Writes are last-write-wins.
type Store interface {
	Get(ctx context.Context, user string) (catalog.Unit, bool, error)
	Set(ctx context.Context, user string, unit catalog.Unit) error
}

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	units map[string]catalog.Unit
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{units: make(map[string]catalog.Unit)}
}

func (m *MemoryStore) Get(ctx context.Context, user string) (catalog.Unit, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.units[user]
	return u, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, user string, unit catalog.Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[user] = unit
	return nil
}

// UnitFor returns the user's stored unit, or DefaultUnit when none is stored.
func UnitFor(ctx context.Context, s Store, user string) (catalog.Unit, error) {
	u, ok, err := s.Get(ctx, user)
	if err != nil {
		return "", err
	}
	if !ok {
		return DefaultUnit, nil
	}
	return u, nil
}

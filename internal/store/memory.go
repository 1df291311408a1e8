package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// Memory is an in-memory Store used by tests and local development. Records
// are deep-copied on every load and save so callers mutate private working
// copies, matching the load/save boundary of the durable implementations.
type Memory struct {
	mu       sync.Mutex
	defaults Defaults
	profiles map[string][]byte
	shared   map[string][]byte
}

// NewMemory creates an empty in-memory store with the given defaults.
func NewMemory(defaults Defaults) *Memory {
	return &Memory{
		defaults: defaults,
		profiles: make(map[string][]byte),
		shared:   make(map[string][]byte),
	}
}

func (m *Memory) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.profiles[userID]
	if !ok {
		return domain.NewProfile(userID), nil
	}
	var profile domain.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %v", domain.ErrPersistence, err)
	}
	return &profile, nil
}

func (m *Memory) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%w: encode profile: %v", domain.ErrPersistence, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = raw
	return nil
}

func (m *Memory) LoadPool(ctx context.Context) (domain.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.shared[KeyPool]
	if !ok {
		return m.defaults.DefaultPool(), nil
	}
	var pool domain.Inventory
	if err := json.Unmarshal(raw, &pool); err != nil {
		return nil, fmt.Errorf("%w: decode pool: %v", domain.ErrPersistence, err)
	}
	return pool, nil
}

func (m *Memory) SavePool(ctx context.Context, pool domain.Inventory) error {
	return m.saveShared(KeyPool, pool)
}

func (m *Memory) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.shared[KeyCatalog]
	if !ok {
		return m.defaults.DefaultCatalog(), nil
	}
	var catalog domain.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %v", domain.ErrPersistence, err)
	}
	return &catalog, nil
}

func (m *Memory) SaveCatalog(ctx context.Context, catalog *domain.Catalog) error {
	return m.saveShared(KeyCatalog, catalog)
}

func (m *Memory) saveShared(key string, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.shared[key] = raw
	return nil
}

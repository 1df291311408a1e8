// Package postgres implements the Store capability on top of PostgreSQL.
// Each record is a single JSONB value: profiles keyed by user ID, shared
// records (pool, catalog) keyed by a well-known name. Absent rows load as
// the documented defaults; I/O faults surface as domain.ErrPersistence.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/store"
)

// Store implements store.Store for PostgreSQL
type Store struct {
	db       *pgxpool.Pool
	defaults store.Defaults
}

// New creates a Postgres-backed store with the given record defaults.
func New(db *pgxpool.Pool, defaults store.Defaults) *Store {
	return &Store{db: db, defaults: defaults}
}

func (s *Store) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var raw []byte
	query := `SELECT record FROM profiles WHERE user_id = $1`
	err := s.db.QueryRow(ctx, query, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewProfile(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load profile %s: %v", domain.ErrPersistence, userID, err)
	}

	var profile domain.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("%w: decode profile %s: %v", domain.ErrPersistence, userID, err)
	}
	if profile.Characters == nil {
		profile.Characters = make(map[string]*domain.Character)
	}
	profile.UserID = userID
	return &profile, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%w: encode profile %s: %v", domain.ErrPersistence, profile.UserID, err)
	}

	query := `
		INSERT INTO profiles (user_id, record, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET record = EXCLUDED.record, updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, profile.UserID, raw); err != nil {
		return fmt.Errorf("%w: save profile %s: %v", domain.ErrPersistence, profile.UserID, err)
	}
	return nil
}

func (s *Store) LoadPool(ctx context.Context) (domain.Inventory, error) {
	raw, found, err := s.loadShared(ctx, store.KeyPool)
	if err != nil {
		return nil, err
	}
	if !found {
		return s.defaults.DefaultPool(), nil
	}

	var pool domain.Inventory
	if err := json.Unmarshal(raw, &pool); err != nil {
		return nil, fmt.Errorf("%w: decode pool: %v", domain.ErrPersistence, err)
	}
	return pool, nil
}

func (s *Store) SavePool(ctx context.Context, pool domain.Inventory) error {
	return s.saveShared(ctx, store.KeyPool, pool)
}

func (s *Store) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	raw, found, err := s.loadShared(ctx, store.KeyCatalog)
	if err != nil {
		return nil, err
	}
	if !found {
		return s.defaults.DefaultCatalog(), nil
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %v", domain.ErrPersistence, err)
	}
	return &catalog, nil
}

func (s *Store) SaveCatalog(ctx context.Context, catalog *domain.Catalog) error {
	return s.saveShared(ctx, store.KeyCatalog, catalog)
}

func (s *Store) loadShared(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	query := `SELECT record FROM shared_records WHERE key = $1`
	err := s.db.QueryRow(ctx, query, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: load %s: %v", domain.ErrPersistence, key, err)
	}
	return raw, true, nil
}

func (s *Store) saveShared(ctx context.Context, key string, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, key, err)
	}

	query := `
		INSERT INTO shared_records (key, record, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET record = EXCLUDED.record, updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, key, raw); err != nil {
		return fmt.Errorf("%w: save %s: %v", domain.ErrPersistence, key, err)
	}
	return nil
}

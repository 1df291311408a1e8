// Package store defines the persistence capability the core depends on.
// Records are loaded by key and saved whole; a missing record loads as its
// documented default, never as an error. No transaction spans two keys, so
// multi-record operations (transfers, purchases) save sequentially and accept
// the crash window between saves.
package store

import (
	"context"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// Shared record keys. Profiles are keyed by user ID; everything else lives
// under one of these.
const (
	KeyPool    = "farfinder_pool"
	KeyCatalog = "shop_catalog"
)

// Store is the key-value persistence capability consumed by the core.
// Implementations report I/O faults wrapped in domain.ErrPersistence.
type Store interface {
	// LoadProfile returns the user's profile, or the empty default profile
	// when no record exists.
	LoadProfile(ctx context.Context, userID string) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile) error

	// LoadPool returns the shared Farfinder inventory, or the configured
	// default when no record exists.
	LoadPool(ctx context.Context) (domain.Inventory, error)
	SavePool(ctx context.Context, pool domain.Inventory) error

	// LoadCatalog returns the shop catalog, or the configured seed catalog
	// when no record exists.
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)
	SaveCatalog(ctx context.Context, catalog *domain.Catalog) error
}

// Defaults supplies the records returned when a key has never been saved.
type Defaults struct {
	Pool    domain.Inventory
	Catalog []domain.ShopItem
}

// DefaultPool returns an independent copy of the pool default.
func (d Defaults) DefaultPool() domain.Inventory {
	if d.Pool == nil {
		return make(domain.Inventory)
	}
	return d.Pool.Clone()
}

// DefaultCatalog returns an independent copy of the catalog seed.
func (d Defaults) DefaultCatalog() *domain.Catalog {
	items := make([]domain.ShopItem, len(d.Catalog))
	copy(items, d.Catalog)
	return &domain.Catalog{Items: items}
}

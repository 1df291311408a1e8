package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// Cached decorates a Store with an expirable LRU over profile loads. Every
// save writes through and refreshes the cached entry, so reads stay coherent
// within the single process that owns all mutations. Shared records (pool,
// catalog) are not cached: they change on most transfers and a stale stock
// count would be user-visible.
type Cached struct {
	inner    Store
	profiles *expirable.LRU[string, []byte]
}

// NewCached wraps inner with a profile cache of the given size and TTL.
func NewCached(inner Store, size int, ttl time.Duration) *Cached {
	return &Cached{
		inner:    inner,
		profiles: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (c *Cached) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if raw, ok := c.profiles.Get(userID); ok {
		if profile, err := decodeProfile(raw); err == nil {
			return profile, nil
		}
		c.profiles.Remove(userID)
	}

	profile, err := c.inner.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if raw, err := encodeProfile(profile); err == nil {
		c.profiles.Add(userID, raw)
	}
	return profile, nil
}

func (c *Cached) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	if err := c.inner.SaveProfile(ctx, profile); err != nil {
		// Unknown durable state; drop the entry rather than guess.
		c.profiles.Remove(profile.UserID)
		return err
	}
	if raw, err := encodeProfile(profile); err == nil {
		c.profiles.Add(profile.UserID, raw)
	} else {
		c.profiles.Remove(profile.UserID)
	}
	return nil
}

func (c *Cached) LoadPool(ctx context.Context) (domain.Inventory, error) {
	return c.inner.LoadPool(ctx)
}

func (c *Cached) SavePool(ctx context.Context, pool domain.Inventory) error {
	return c.inner.SavePool(ctx, pool)
}

func (c *Cached) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	return c.inner.LoadCatalog(ctx)
}

func (c *Cached) SaveCatalog(ctx context.Context, catalog *domain.Catalog) error {
	return c.inner.SaveCatalog(ctx, catalog)
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// countingStore counts LoadProfile hits on the inner store.
type countingStore struct {
	*Memory
	profileLoads int
	saveErr      error
}

func (c *countingStore) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	c.profileLoads++
	return c.Memory.LoadProfile(ctx, userID)
}

func (c *countingStore) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	return c.Memory.SaveProfile(ctx, profile)
}

func TestCached_ProfileLoadHitsInnerOnce(t *testing.T) {
	inner := &countingStore{Memory: NewMemory(testDefaults())}
	cached := NewCached(inner, 16, time.Minute)
	ctx := context.Background()

	profile := domain.NewProfile("42")
	profile.Characters["Nyx"] = &domain.Character{Inventory: domain.Inventory{"rations": 3}}
	require.NoError(t, inner.SaveProfile(ctx, profile))

	for n := 0; n < 5; n++ {
		loaded, err := cached.LoadProfile(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, 3, loaded.Characters["Nyx"].Inventory.Get("rations"))
	}
	assert.Equal(t, 1, inner.profileLoads)
}

func TestCached_SaveRefreshesCacheEntry(t *testing.T) {
	inner := &countingStore{Memory: NewMemory(testDefaults())}
	cached := NewCached(inner, 16, time.Minute)
	ctx := context.Background()

	profile, err := cached.LoadProfile(ctx, "42")
	require.NoError(t, err)
	profile.Characters["Nyx"] = &domain.Character{Inventory: domain.Inventory{"rations": 9}}
	require.NoError(t, cached.SaveProfile(ctx, profile))

	loaded, err := cached.LoadProfile(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Characters["Nyx"].Inventory.Get("rations"))
	assert.Equal(t, 1, inner.profileLoads, "save must refresh the cache, not invalidate it")
}

func TestCached_SaveFailureDropsEntry(t *testing.T) {
	inner := &countingStore{Memory: NewMemory(testDefaults())}
	cached := NewCached(inner, 16, time.Minute)
	ctx := context.Background()

	_, err := cached.LoadProfile(ctx, "42")
	require.NoError(t, err)

	inner.saveErr = errors.New("disk full")
	err = cached.SaveProfile(ctx, domain.NewProfile("42"))
	require.Error(t, err)
	inner.saveErr = nil

	// The next load must go back to the durable store.
	before := inner.profileLoads
	_, err = cached.LoadProfile(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, before+1, inner.profileLoads)
}

func TestCached_CachedLoadsAreIsolatedCopies(t *testing.T) {
	inner := &countingStore{Memory: NewMemory(testDefaults())}
	cached := NewCached(inner, 16, time.Minute)
	ctx := context.Background()

	profile := domain.NewProfile("42")
	profile.Characters["Nyx"] = &domain.Character{Inventory: domain.Inventory{"rations": 3}}
	require.NoError(t, cached.SaveProfile(ctx, profile))

	first, err := cached.LoadProfile(ctx, "42")
	require.NoError(t, err)
	first.Characters["Nyx"].Inventory["rations"] = 99

	second, err := cached.LoadProfile(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 3, second.Characters["Nyx"].Inventory.Get("rations"))
}

func TestCached_SharedRecordsBypassCache(t *testing.T) {
	inner := &countingStore{Memory: NewMemory(testDefaults())}
	cached := NewCached(inner, 16, time.Minute)
	ctx := context.Background()

	require.NoError(t, cached.SavePool(ctx, domain.Inventory{"rations": 40}))
	// Write behind the decorator's back; the read must see it.
	require.NoError(t, inner.SavePool(ctx, domain.Inventory{"rations": 17}))

	pool, err := cached.LoadPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17, pool.Get("rations"))
}

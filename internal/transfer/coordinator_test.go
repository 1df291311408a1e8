package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/ledger"
	"github.com/lunareth/FarfinderBot_Go/internal/store"
)

var (
	charAllow = ledger.NewAllowlist(domain.ResourceRations, domain.ResourceMaterial, domain.ResourceTokens)
	poolAllow = ledger.NewAllowlist(domain.ResourceRations, domain.ResourceMaterial)
)

func newTestStore(t *testing.T) *store.Memory {
	t.Helper()
	st := store.NewMemory(store.Defaults{
		Pool: domain.Inventory{domain.ResourceRations: 50, domain.ResourceMaterial: 50},
	})

	profile := domain.NewProfile("42")
	profile.Characters["Nyx"] = &domain.Character{
		Class:     "scout",
		Species:   "tiefling",
		Level:     1,
		Status:    domain.StatusIdle,
		Inventory: domain.Inventory{domain.ResourceRations: 0, domain.ResourceMaterial: 0, domain.ResourceTokens: 12},
	}
	profile.ActiveCharacter = "Nyx"
	require.NoError(t, st.SaveProfile(context.Background(), profile))
	return st
}

func TestTake_MovesFromPoolToCharacter(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st, charAllow, poolAllow)

	result, err := svc.Take(context.Background(), "42", domain.ResourceRations, 10)
	require.NoError(t, err)

	assert.Equal(t, "Nyx", result.Character)
	assert.Equal(t, 10, result.CharacterAfter)
	assert.Equal(t, 40, result.PoolAfter)

	// Persisted, not just in memory.
	pool, err := st.LoadPool(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, pool.Get(domain.ResourceRations))

	profile, err := st.LoadProfile(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 10, profile.Characters["Nyx"].Inventory.Get(domain.ResourceRations))
}

func TestDeposit_MovesFromCharacterToPool(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st, charAllow, poolAllow)

	_, err := svc.Take(context.Background(), "42", domain.ResourceMaterial, 7)
	require.NoError(t, err)

	result, err := svc.Deposit(context.Background(), "42", domain.ResourceMaterial, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, result.CharacterAfter)
	assert.Equal(t, 46, result.PoolAfter)
}

func TestTransfer_ConservesTotal(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st, charAllow, poolAllow)
	ctx := context.Background()

	total := func() int {
		pool, err := st.LoadPool(ctx)
		require.NoError(t, err)
		profile, err := st.LoadProfile(ctx, "42")
		require.NoError(t, err)
		return pool.Get(domain.ResourceRations) + profile.Characters["Nyx"].Inventory.Get(domain.ResourceRations)
	}

	before := total()
	_, err := svc.Take(ctx, "42", domain.ResourceRations, 25)
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, "42", domain.ResourceRations, 11)
	require.NoError(t, err)
	assert.Equal(t, before, total())
}

func TestTransfer_RejectsInvalidAmounts(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st, charAllow, poolAllow)

	for _, amount := range []int{0, -5, domain.MaxTransferAmount + 1} {
		_, err := svc.Take(context.Background(), "42", domain.ResourceRations, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidValue, "amount %d", amount)
	}
}

func TestTransfer_RejectsUnknownResource(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st, charAllow, poolAllow)

	_, err := svc.Take(context.Background(), "42", "waterskins", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidResource)
}

func TestTransfer_CharacterOnlyKindRejected(t *testing.T) {
	st := newTestStore(t)
	// Tokens are a character kind only; the pool does not hold them.
	svc := NewService(st, charAllow, poolAllow)

	_, err := svc.Deposit(context.Background(), "42", domain.ResourceTokens, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidResource)
}

func TestTransfer_OverdraftRejected(t *testing.T) {
	st := newTestStore(t)
	svc := NewService(st, charAllow, poolAllow)

	_, err := svc.Deposit(context.Background(), "42", domain.ResourceRations, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// Nothing moved.
	pool, err := st.LoadPool(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, pool.Get(domain.ResourceRations))
}

func TestTransfer_NoActiveCharacter(t *testing.T) {
	st := store.NewMemory(store.Defaults{Pool: domain.Inventory{domain.ResourceRations: 50}})
	svc := NewService(st, charAllow, poolAllow)

	_, err := svc.Take(context.Background(), "99", domain.ResourceRations, 1)
	assert.ErrorIs(t, err, domain.ErrNoActiveCharacter)
}

func TestMove_RollsBackSourceOnCreditFailure(t *testing.T) {
	src := domain.Inventory{"rations": 10}
	dst := domain.Inventory{}
	srcAllow := ledger.NewAllowlist("rations")
	dstAllow := ledger.NewAllowlist("material") // destination refuses rations

	_, _, err := move(src, dst, srcAllow, dstAllow, "rations", 4)
	require.ErrorIs(t, err, domain.ErrInvalidResource)
	assert.Equal(t, 10, src.Get("rations"), "debit must be compensated")
	assert.Empty(t, dst)
}

// failingStore wraps a Store and fails SavePool, leaving the two records in
// the accepted divergence window.
type failingStore struct {
	store.Store
	savePoolErr error
}

func (f *failingStore) SavePool(ctx context.Context, pool domain.Inventory) error {
	if f.savePoolErr != nil {
		return f.savePoolErr
	}
	return f.Store.SavePool(ctx, pool)
}

func TestTransfer_SurfacesSecondSaveFailure(t *testing.T) {
	inner := newTestStore(t)
	st := &failingStore{Store: inner, savePoolErr: errors.New("disk full")}
	svc := NewService(st, charAllow, poolAllow)

	_, err := svc.Take(context.Background(), "42", domain.ResourceRations, 10)
	require.Error(t, err)

	// The character record was already written; the failure is reported, not
	// silently swallowed.
	profile, err := inner.LoadProfile(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 10, profile.Characters["Nyx"].Inventory.Get(domain.ResourceRations))
}

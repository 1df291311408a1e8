package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/ledger"
	"github.com/lunareth/FarfinderBot_Go/internal/store"
)

// MockAnnouncer implements announce.Announcer for testing
type MockAnnouncer struct {
	mock.Mock
}

func (m *MockAnnouncer) Announce(ctx context.Context, actorID string, status domain.Status) error {
	args := m.Called(ctx, actorID, status)
	return args.Error(0)
}

var testAllow = ledger.NewAllowlist(domain.ResourceRations, domain.ResourceMaterial, domain.ResourceTokens)

func newTestService(t *testing.T) (Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory(store.Defaults{})
	return NewService(st, nil, testAllow), st
}

func registerNyx(t *testing.T, svc Service) {
	t.Helper()
	_, err := svc.Register(context.Background(), "42", "Nyx", Registration{
		Class:      "scout",
		Species:    "tiefling",
		Background: "smuggler",
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetActive(context.Background(), "42", "Nyx"))
}

func TestRegister_SeedsNewCharacter(t *testing.T) {
	svc, _ := newTestService(t)

	profile, err := svc.Register(context.Background(), "42", "Nyx", Registration{
		Class:       "scout",
		Species:     "tiefling",
		Background:  "smuggler",
		Description: "keeps to the rigging",
	})
	require.NoError(t, err)

	assert.Equal(t, "Nyx", profile.Name)
	assert.Equal(t, 1, profile.Character.Level)
	assert.Equal(t, domain.StatusIdle, profile.Character.Status)
	// Every allow-listed kind starts at zero.
	assert.Equal(t, 0, profile.Character.Inventory.Get(domain.ResourceRations))
	assert.Equal(t, 0, profile.Character.Inventory.Get(domain.ResourceTokens))
}

func TestRegister_DuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	registerNyx(t, svc)

	_, err := svc.Register(context.Background(), "42", "Nyx", Registration{
		Class: "bard", Species: "human", Background: "noble",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRegister_RequiresCoreAttributes(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), "42", "Nyx", Registration{Class: "scout"})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestSetActive_UnknownCharacter(t *testing.T) {
	svc, _ := newTestService(t)
	registerNyx(t, svc)

	err := svc.SetActive(context.Background(), "42", "Brill")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestProfile_NoActiveCharacter(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Profile(context.Background(), "42")
	assert.ErrorIs(t, err, domain.ErrNoActiveCharacter)
}

func TestList_ExcludesActiveFromOthers(t *testing.T) {
	svc, _ := newTestService(t)
	registerNyx(t, svc)
	_, err := svc.Register(context.Background(), "42", "Brill", Registration{
		Class: "bard", Species: "human", Background: "noble",
	})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "42", "Ashe", Registration{
		Class: "warden", Species: "dwarf", Background: "miner",
	})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Nyx", list.Active)
	assert.Equal(t, []string{"Ashe", "Brill"}, list.Others)
}

func TestSetAttribute_Level(t *testing.T) {
	svc, _ := newTestService(t)
	registerNyx(t, svc)

	profile, err := svc.SetAttribute(context.Background(), "42", domain.AttrLevel, "3")
	require.NoError(t, err)
	assert.Equal(t, 3, profile.Character.Level)
}

func TestSetAttribute_BadLevel(t *testing.T) {
	svc, _ := newTestService(t)
	registerNyx(t, svc)

	for _, value := range []string{"zero", "0", "-2", "1.5"} {
		_, err := svc.SetAttribute(context.Background(), "42", domain.AttrLevel, value)
		assert.ErrorIs(t, err, domain.ErrInvalidValue, "value %q", value)
	}
}

func TestSetAttribute_UnknownField(t *testing.T) {
	svc, _ := newTestService(t)
	registerNyx(t, svc)

	_, err := svc.SetAttribute(context.Background(), "42", "alignment", "chaotic")
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestAdjustInventory_AddAndRemove(t *testing.T) {
	svc, _ := newTestService(t)
	registerNyx(t, svc)
	ctx := context.Background()

	result, err := svc.AdjustInventory(ctx, "42", ActionAdd, domain.ResourceRations, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Quantity)

	result, err = svc.AdjustInventory(ctx, "42", ActionRemove, domain.ResourceRations, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Quantity)
}

func TestAdjustInventory_RemoveBelowZero(t *testing.T) {
	svc, st := newTestService(t)
	registerNyx(t, svc)
	ctx := context.Background()

	_, err := svc.AdjustInventory(ctx, "42", ActionRemove, domain.ResourceRations, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	profile, err := st.LoadProfile(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Characters["Nyx"].Inventory.Get(domain.ResourceRations))
}

func TestAdjustInventory_BadAction(t *testing.T) {
	svc, _ := newTestService(t)
	registerNyx(t, svc)

	_, err := svc.AdjustInventory(context.Background(), "42", "steal", domain.ResourceRations, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

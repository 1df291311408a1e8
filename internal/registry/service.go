// Package registry owns the set of characters per user, the active-character
// pointer, attribute edits and the status lifecycle.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/lunareth/FarfinderBot_Go/internal/announce"
	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/ledger"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
	"github.com/lunareth/FarfinderBot_Go/internal/metrics"
	"github.com/lunareth/FarfinderBot_Go/internal/store"
)

// Inventory adjust actions.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// Registration holds the attributes supplied when registering a character.
type Registration struct {
	Class       string
	Species     string
	Background  string
	Description string
}

// CharacterProfile is a character resolved together with its name.
type CharacterProfile struct {
	Name      string           `json:"name"`
	Character domain.Character `json:"character"`
}

// CharacterList is the my-characters view: the active name plus the rest.
type CharacterList struct {
	Active string   `json:"active,omitempty"`
	Others []string `json:"others"`
}

// StatusResult reports a committed status transition. AnnounceFailed is set
// when the transition persisted but the announcement did not; the transition
// is never rolled back for that.
type StatusResult struct {
	Character      string        `json:"character"`
	Status         domain.Status `json:"status"`
	RationsLeft    int           `json:"rations_left"`
	AnnounceFailed bool          `json:"announce_failed,omitempty"`
}

// InventoryView is a character's inventory resolved with its name.
type InventoryView struct {
	Character string           `json:"character"`
	Inventory domain.Inventory `json:"inventory"`
}

// AdjustResult reports a single-inventory adjustment.
type AdjustResult struct {
	Character string `json:"character"`
	Resource  string `json:"resource"`
	Quantity  int    `json:"quantity"`
}

// Service defines the interface for character registry operations
type Service interface {
	Register(ctx context.Context, userID, name string, attrs Registration) (*CharacterProfile, error)
	SetActive(ctx context.Context, userID, name string) error
	Profile(ctx context.Context, userID string) (*CharacterProfile, error)
	List(ctx context.Context, userID string) (*CharacterList, error)
	SetAttribute(ctx context.Context, userID, field, value string) (*CharacterProfile, error)
	SetStatus(ctx context.Context, userID string, status domain.Status) (*StatusResult, error)
	Inventory(ctx context.Context, userID string) (*InventoryView, error)
	AdjustInventory(ctx context.Context, userID, action, kind string, amount int) (*AdjustResult, error)
}

type service struct {
	store     store.Store
	announcer announce.Announcer
	charAllow ledger.Allowlist
}

// NewService creates a new registry service.
func NewService(st store.Store, announcer announce.Announcer, charAllow ledger.Allowlist) Service {
	if announcer == nil {
		announcer = announce.Nop{}
	}
	return &service{store: st, announcer: announcer, charAllow: charAllow}
}

func (s *service) Register(ctx context.Context, userID, name string, attrs Registration) (*CharacterProfile, error) {
	log := logger.FromContext(ctx)
	log.Info("Register called", "user_id", userID, "name", name)

	if name == "" || attrs.Class == "" || attrs.Species == "" || attrs.Background == "" {
		return nil, fmt.Errorf("%w: name, class, species and background are required", domain.ErrInvalidValue)
	}

	profile, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, exists := profile.Characters[name]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, name)
	}

	character := &domain.Character{
		Class:       attrs.Class,
		Species:     attrs.Species,
		Background:  attrs.Background,
		Level:       1,
		Status:      domain.StatusIdle,
		Description: attrs.Description,
		Inventory:   domain.NewInventory(s.charAllow.Kinds()...),
	}
	profile.Characters[name] = character

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	metrics.CharactersRegistered.Inc()
	log.Info("Character registered", "user_id", userID, "name", name)
	return &CharacterProfile{Name: name, Character: *character}, nil
}

func (s *service) SetActive(ctx context.Context, userID, name string) error {
	log := logger.FromContext(ctx)
	log.Info("SetActive called", "user_id", userID, "name", name)

	profile, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		return err
	}

	if _, ok := profile.Characters[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, name)
	}

	profile.ActiveCharacter = name
	return s.store.SaveProfile(ctx, profile)
}

func (s *service) Profile(ctx context.Context, userID string) (*CharacterProfile, error) {
	profile, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	name, character, err := profile.Active()
	if err != nil {
		return nil, err
	}
	return &CharacterProfile{Name: name, Character: *character}, nil
}

func (s *service) List(ctx context.Context, userID string) (*CharacterList, error) {
	profile, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := &CharacterList{Active: profile.ActiveCharacter, Others: []string{}}
	for name := range profile.Characters {
		if name != profile.ActiveCharacter {
			list.Others = append(list.Others, name)
		}
	}
	sort.Strings(list.Others)
	return list, nil
}

func (s *service) SetAttribute(ctx context.Context, userID, field, value string) (*CharacterProfile, error) {
	log := logger.FromContext(ctx)
	log.Info("SetAttribute called", "user_id", userID, "field", field)

	profile, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	name, character, err := profile.Active()
	if err != nil {
		return nil, err
	}

	switch field {
	case domain.AttrLevel:
		level, err := strconv.Atoi(value)
		if err != nil || level < 1 {
			return nil, fmt.Errorf("%w: level must be a positive integer", domain.ErrInvalidValue)
		}
		character.Level = level
	case domain.AttrClass:
		if value == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidValue, field)
		}
		character.Class = value
	case domain.AttrSpecies:
		if value == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidValue, field)
		}
		character.Species = value
	case domain.AttrBackground:
		if value == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidValue, field)
		}
		character.Background = value
	case domain.AttrDescription:
		character.Description = value
	default:
		return nil, fmt.Errorf("%w: cannot set %q", domain.ErrInvalidValue, field)
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	log.Info("Attribute updated", "user_id", userID, "character", name, "field", field)
	return &CharacterProfile{Name: name, Character: *character}, nil
}

func (s *service) Inventory(ctx context.Context, userID string) (*InventoryView, error) {
	profile, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	name, character, err := profile.Active()
	if err != nil {
		return nil, err
	}
	if character.Inventory == nil {
		character.Inventory = make(domain.Inventory)
	}
	return &InventoryView{Character: name, Inventory: character.Inventory}, nil
}

func (s *service) AdjustInventory(ctx context.Context, userID, action, kind string, amount int) (*AdjustResult, error) {
	log := logger.FromContext(ctx)
	log.Info("AdjustInventory called", "user_id", userID, "action", action, "resource", kind, "amount", amount)

	if amount <= 0 || amount > domain.MaxTransferAmount {
		return nil, fmt.Errorf("%w: amount must be between 1 and %d", domain.ErrInvalidValue, domain.MaxTransferAmount)
	}

	delta := amount
	switch action {
	case ActionAdd:
	case ActionRemove:
		delta = -amount
	default:
		return nil, fmt.Errorf("%w: action must be %q or %q", domain.ErrInvalidValue, ActionAdd, ActionRemove)
	}

	profile, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	name, character, err := profile.Active()
	if err != nil {
		return nil, err
	}
	if character.Inventory == nil {
		character.Inventory = make(domain.Inventory)
	}

	quantity, err := ledger.Apply(character.Inventory, kind, delta, s.charAllow)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	log.Info("Inventory adjusted", "character", name, "resource", kind, "quantity", quantity)
	return &AdjustResult{Character: name, Resource: kind, Quantity: quantity}, nil
}

package domain

import (
	"fmt"
	"strings"
)

// Status is a character's lifecycle state. All states are mutually reachable;
// characters start Idle.
type Status string

const (
	StatusIdle      Status = "Idle"
	StatusResting   Status = "Resting"
	StatusExploring Status = "Exploring"
)

// ParseStatus converts user input into a canonical Status, ignoring case.
func ParseStatus(s string) (Status, error) {
	for _, status := range []Status{StatusIdle, StatusResting, StatusExploring} {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: status %q", ErrInvalidValue, s)
}

// Character is a single registered character. Identity is the owning user's
// ID plus the character name, which is unique (case-sensitive) per user.
type Character struct {
	Class       string    `json:"class"`
	Species     string    `json:"species"`
	Background  string    `json:"background"`
	Level       int       `json:"level"`
	Status      Status    `json:"status"`
	Description string    `json:"description,omitempty"`
	Inventory   Inventory `json:"inventory"`
}

// Profile is the per-user record: all characters keyed by name plus the
// active-character pointer. ActiveCharacter is a weak reference - it may be
// empty or name a character that no longer exists, so readers must validate
// it against the map before use.
type Profile struct {
	UserID          string                `json:"user_id"`
	Characters      map[string]*Character `json:"characters"`
	ActiveCharacter string                `json:"active_character,omitempty"`
}

// NewProfile returns the default (empty) profile for a user.
func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:     userID,
		Characters: make(map[string]*Character),
	}
}

// Active resolves the active-character pointer, returning the character and
// its name. A missing or dangling pointer yields ErrNoActiveCharacter.
func (p *Profile) Active() (string, *Character, error) {
	if p.ActiveCharacter == "" {
		return "", nil, ErrNoActiveCharacter
	}
	c, ok := p.Characters[p.ActiveCharacter]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q is gone", ErrNoActiveCharacter, p.ActiveCharacter)
	}
	return p.ActiveCharacter, c, nil
}

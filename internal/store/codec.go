package store

import (
	"encoding/json"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// Profiles are copied through JSON so every caller works on an independent
// record; handing out shared pointers would let one request's mutation leak
// into another's load.

func encodeProfile(profile *domain.Profile) ([]byte, error) {
	return json.Marshal(profile)
}

func decodeProfile(raw []byte) (*domain.Profile, error) {
	var profile domain.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	if profile.Characters == nil {
		profile.Characters = make(map[string]*domain.Character)
	}
	return &profile, nil
}

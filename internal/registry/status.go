package registry

import (
	"context"
	"fmt"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/ledger"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
	"github.com/lunareth/FarfinderBot_Go/internal/metrics"
)

// SetStatus moves the active character to the given status. Resting consumes
// one ration atomically with the transition: if the debit fails, the status
// is unchanged. After the transition is persisted the announcer is notified;
// an announce failure is reported in the result, never rolled back.
func (s *service) SetStatus(ctx context.Context, userID string, status domain.Status) (*StatusResult, error) {
	log := logger.FromContext(ctx)
	log.Info("SetStatus called", "user_id", userID, "status", status)

	status, err := domain.ParseStatus(string(status))
	if err != nil {
		return nil, err
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

	if status == domain.StatusResting {
		if _, err := ledger.Apply(character.Inventory, domain.ResourceRations, -domain.RationsPerRest, s.charAllow); err != nil {
			log.Warn("Rest rejected, not enough rations", "character", name)
			return nil, fmt.Errorf("cannot rest: %w", err)
		}
	}

	character.Status = status

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(status)).Inc()

	result := &StatusResult{
		Character:   name,
		Status:      status,
		RationsLeft: character.Inventory.Get(domain.ResourceRations),
	}

	if err := s.announcer.Announce(ctx, userID, status); err != nil {
		// The transition is already committed; surface the failure only.
		log.Warn("Status announcement failed", "user_id", userID, "status", status, "error", err)
		result.AnnounceFailed = true
	}

	log.Info("Status updated", "character", name, "status", status)
	return result, nil
}

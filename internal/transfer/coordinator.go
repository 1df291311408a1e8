// Package transfer orchestrates two-sided moves between a character's
// inventory and the shared Farfinder pool. The two sides live under
// different storage keys with no transaction spanning them, so moves are
// applied in memory with a compensate-on-failure step and only then
// persisted, character record first.
package transfer

import (
	"context"
	"fmt"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/ledger"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
	"github.com/lunareth/FarfinderBot_Go/internal/metrics"
	"github.com/lunareth/FarfinderBot_Go/internal/store"
)

// Service defines the interface for transfer operations
type Service interface {
	// Deposit moves amount of kind from the active character to the pool.
	Deposit(ctx context.Context, userID, kind string, amount int) (*domain.Transfer, error)
	// Take moves amount of kind from the pool to the active character.
	Take(ctx context.Context, userID, kind string, amount int) (*domain.Transfer, error)
	// Pool returns the current shared inventory.
	Pool(ctx context.Context) (domain.Inventory, error)
}

type service struct {
	store     store.Store
	charAllow ledger.Allowlist
	poolAllow ledger.Allowlist
}

// NewService creates a new transfer coordinator.
func NewService(st store.Store, charAllow, poolAllow ledger.Allowlist) Service {
	return &service{store: st, charAllow: charAllow, poolAllow: poolAllow}
}

func (s *service) Deposit(ctx context.Context, userID, kind string, amount int) (*domain.Transfer, error) {
	return s.transfer(ctx, userID, kind, amount, domain.TransferDeposit)
}

func (s *service) Take(ctx context.Context, userID, kind string, amount int) (*domain.Transfer, error) {
	return s.transfer(ctx, userID, kind, amount, domain.TransferTake)
}

func (s *service) Pool(ctx context.Context) (domain.Inventory, error) {
	return s.store.LoadPool(ctx)
}

// transfer runs the shared algorithm: validate, debit source, credit
// destination with rollback, persist both records.
func (s *service) transfer(ctx context.Context, userID, kind string, amount int, direction string) (*domain.Transfer, error) {
	log := logger.FromContext(ctx)
	log.Info("Transfer requested", "direction", direction, "user_id", userID, "resource", kind, "amount", amount)

	if amount <= 0 || amount > domain.MaxTransferAmount {
		metrics.TransfersTotal.WithLabelValues(direction, metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%w: amount must be between 1 and %d", domain.ErrInvalidValue, domain.MaxTransferAmount)
	}

	// Both sides must recognize the kind before anything moves.
	if !s.charAllow.Recognizes(kind) || !s.poolAllow.Recognizes(kind) {
		metrics.TransfersTotal.WithLabelValues(direction, metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidResource, kind)
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

	pool, err := s.store.LoadPool(ctx)
	if err != nil {
		return nil, err
	}

	var charAfter, poolAfter int
	switch direction {
	case domain.TransferDeposit:
		charAfter, poolAfter, err = move(character.Inventory, pool, s.charAllow, s.poolAllow, kind, amount)
	case domain.TransferTake:
		poolAfter, charAfter, err = move(pool, character.Inventory, s.poolAllow, s.charAllow, kind, amount)
	default:
		return nil, fmt.Errorf("%w: direction %q", domain.ErrInvalidValue, direction)
	}
	if err != nil {
		log.Warn("Transfer rejected", "direction", direction, "resource", kind, "error", err)
		metrics.TransfersTotal.WithLabelValues(direction, metrics.OutcomeRejected).Inc()
		return nil, err
	}

	// Persist the character record first, then the shared record. A crash
	// between the two saves can strand one side; that window is accepted
	// (see store package doc) and never silently reordered.
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		log.Error("Failed to save profile, transfer not applied", "error", err)
		return nil, err
	}
	if err := s.store.SavePool(ctx, pool); err != nil {
		log.Error("Failed to save pool after profile save, records diverged", "error", err)
		return nil, err
	}

	metrics.TransfersTotal.WithLabelValues(direction, metrics.OutcomeApplied).Inc()
	log.Info("Transfer applied",
		"direction", direction, "character", name, "resource", kind, "amount", amount,
		"character_after", charAfter, "pool_after", poolAfter)

	return &domain.Transfer{
		Direction:      direction,
		Character:      name,
		Resource:       kind,
		Amount:         amount,
		CharacterAfter: charAfter,
		PoolAfter:      poolAfter,
	}, nil
}

// move debits amount of kind from src and credits it to dst. If the credit
// fails the debit is compensated, leaving src at its pre-operation value.
// Returns the post-operation quantities of src and dst.
func move(src, dst domain.Inventory, srcAllow, dstAllow ledger.Allowlist, kind string, amount int) (int, int, error) {
	srcAfter, err := ledger.Apply(src, kind, -amount, srcAllow)
	if err != nil {
		return 0, 0, err
	}

	dstAfter, err := ledger.Apply(dst, kind, amount, dstAllow)
	if err != nil {
		// Re-credit the source; the debit above succeeded so this cannot
		// go negative.
		if _, rbErr := ledger.Apply(src, kind, amount, srcAllow); rbErr != nil {
			return 0, 0, fmt.Errorf("rollback failed after credit error %v: %w", err, rbErr)
		}
		return 0, 0, err
	}

	return srcAfter, dstAfter, nil
}

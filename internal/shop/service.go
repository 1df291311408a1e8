// Package shop resolves purchases against the shared catalog and the
// buyer's token balance. A purchase touches three quantities (tokens, stock,
// purchased goods), so every constraint is checked before any of them moves:
// index first, then funds, then stock.
package shop

import (
	"context"
	"fmt"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
	"github.com/lunareth/FarfinderBot_Go/internal/ledger"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
	"github.com/lunareth/FarfinderBot_Go/internal/metrics"
	"github.com/lunareth/FarfinderBot_Go/internal/store"
)

// Receipt reports a completed purchase.
type Receipt struct {
	Character  string `json:"character"`
	Item       string `json:"item"`
	Quantity   int    `json:"quantity"`
	Spent      int    `json:"spent"`
	TokensLeft int    `json:"tokens_left"`
	StockLeft  int    `json:"stock_left"`
}

// Service defines the interface for shop operations
type Service interface {
	// List returns the catalog in display order (1-based external indexing).
	List(ctx context.Context) ([]domain.ShopItem, error)
	// Purchase buys quantity units of the item at the 1-based index for the
	// user's active character.
	Purchase(ctx context.Context, userID string, index, quantity int) (*Receipt, error)
}

type service struct {
	store     store.Store
	charAllow ledger.Allowlist
}

// NewService creates a new shop service.
func NewService(st store.Store, charAllow ledger.Allowlist) Service {
	return &service{store: st, charAllow: charAllow}
}

func (s *service) List(ctx context.Context) ([]domain.ShopItem, error) {
	catalog, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Items, nil
}

func (s *service) Purchase(ctx context.Context, userID string, index, quantity int) (*Receipt, error) {
	log := logger.FromContext(ctx)
	log.Info("Purchase called", "user_id", userID, "index", index, "quantity", quantity)

	if quantity <= 0 || quantity > domain.MaxTransferAmount {
		metrics.PurchasesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", domain.ErrInvalidValue, domain.MaxTransferAmount)
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

	catalog, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	// Validate-then-commit: index, then funds, then stock. Nothing below
	// mutates until all three checks pass.
	item, err := catalog.ItemAt(index)
	if err != nil {
		metrics.PurchasesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%w: index %d", domain.ErrInvalidIndex, index)
	}

	cost := item.Price * quantity
	if character.Inventory.Get(domain.ResourceTokens) < cost {
		metrics.PurchasesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%w: %s costs %d, have %d",
			domain.ErrInsufficientFunds, item.Name, cost, character.Inventory.Get(domain.ResourceTokens))
	}

	if item.Stock < quantity {
		metrics.PurchasesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%w: %s has %d left", domain.ErrInsufficientStock, item.Name, item.Stock)
	}

	tokensLeft, err := ledger.Apply(character.Inventory, domain.ResourceTokens, -cost, s.charAllow)
	if err != nil {
		metrics.PurchasesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	// The purchased item's name becomes a resource kind in the buyer's
	// inventory.
	if _, err := ledger.Apply(character.Inventory, item.Name, quantity, s.charAllow.With(item.Name)); err != nil {
		// Put the tokens back; validation above makes this unreachable in
		// practice.
		_, _ = ledger.Apply(character.Inventory, domain.ResourceTokens, cost, s.charAllow)
		metrics.PurchasesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	item.Stock -= quantity

	// Buyer record first, then the shared catalog.
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.store.SaveCatalog(ctx, catalog); err != nil {
		log.Error("Failed to save catalog after profile save, records diverged", "error", err)
		return nil, err
	}

	metrics.PurchasesTotal.WithLabelValues(metrics.OutcomeApplied).Inc()
	metrics.TokensSpent.Add(float64(cost))
	log.Info("Purchase applied",
		"character", name, "item", item.Name, "quantity", quantity,
		"spent", cost, "tokens_left", tokensLeft, "stock_left", item.Stock)

	return &Receipt{
		Character:  name,
		Item:       item.Name,
		Quantity:   quantity,
		Spent:      cost,
		TokensLeft: tokensLeft,
		StockLeft:  item.Stock,
	}, nil
}

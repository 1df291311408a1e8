// Package ledger applies signed quantity deltas to inventories while
// enforcing the recognized-kind allow-list and the non-negative invariant.
// It never persists anything; callers batch mutations and save afterwards,
// which lets a transfer touch two inventories before either record is
// written.
package ledger

import (
	"fmt"
	"sort"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// Allowlist is the set of resource kinds an inventory class recognizes.
// Character inventories and the shared pool carry different sets, injected
// from configuration.
type Allowlist struct {
	kinds map[string]struct{}
}

// NewAllowlist builds an allow-list from the given kinds.
func NewAllowlist(kinds ...string) Allowlist {
	set := make(map[string]struct{}, len(kinds))
	for _, kind := range kinds {
		set[kind] = struct{}{}
	}
	return Allowlist{kinds: set}
}

// Recognizes reports whether kind may be written to inventories of this class.
func (a Allowlist) Recognizes(kind string) bool {
	_, ok := a.kinds[kind]
	return ok
}

// With returns a copy of the allow-list extended with extra kinds. Used for
// shop purchases, where the purchased item's name becomes a resource kind in
// the buyer's inventory.
func (a Allowlist) With(extra ...string) Allowlist {
	kinds := make([]string, 0, len(a.kinds)+len(extra))
	for kind := range a.kinds {
		kinds = append(kinds, kind)
	}
	kinds = append(kinds, extra...)
	return NewAllowlist(kinds...)
}

// Kinds returns the recognized kinds in sorted order.
func (a Allowlist) Kinds() []string {
	kinds := make([]string, 0, len(a.kinds))
	for kind := range a.kinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Apply credits (delta > 0) or debits (delta < 0) a resource within a single
// inventory and returns the new quantity. A missing key reads as zero. On any
// error the inventory is left unmodified:
//   - kind outside the allow-list -> domain.ErrInvalidResource
//   - current+delta < 0 -> domain.ErrInsufficientBalance
func Apply(inv domain.Inventory, kind string, delta int, allow Allowlist) (int, error) {
	if !allow.Recognizes(kind) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidResource, kind)
	}

	current := inv.Get(kind)
	next := current + delta
	if next < 0 {
		return 0, fmt.Errorf("%w: %s has %d, need %d", domain.ErrInsufficientBalance, kind, current, -delta)
	}

	inv[kind] = next
	return next, nil
}

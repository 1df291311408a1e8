package domain

// Inventory maps a resource kind to a non-negative quantity.
// Missing keys read as zero; the recognized-kind allow-list is enforced on
// writes by the ledger, not here.
type Inventory map[string]int

// Get returns the quantity for kind, treating a missing key as zero.
func (inv Inventory) Get(kind string) int {
	return inv[kind]
}

// Clone returns an independent copy of the inventory.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for kind, qty := range inv {
		out[kind] = qty
	}
	return out
}

// NewInventory creates an inventory seeded with zero for every given kind.
func NewInventory(kinds ...string) Inventory {
	inv := make(Inventory, len(kinds))
	for _, kind := range kinds {
		inv[kind] = 0
	}
	return inv
}

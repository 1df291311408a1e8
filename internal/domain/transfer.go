package domain

// Transfer direction names, used in results, logs and metrics labels.
const (
	TransferDeposit = "deposit" // character -> shared pool
	TransferTake    = "take"    // shared pool -> character
)

// Transfer records the outcome of a completed two-sided move. It is transient:
// returned to the caller, never persisted.
type Transfer struct {
	Direction string `json:"direction"`
	Character string `json:"character"`
	Resource  string `json:"resource"`
	Amount    int    `json:"amount"`
	// Post-transfer balances for the two sides.
	CharacterAfter int `json:"character_after"`
	PoolAfter      int `json:"pool_after"`
}

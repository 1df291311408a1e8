package domain

// ShopItem is one purchasable entry in the shared catalog.
type ShopItem struct {
	Name  string `json:"name"`
	Price int    `json:"price"` // unit price in tokens
	Stock int    `json:"stock"` // remaining units
}

// Catalog is the single shared ordered catalog. External indexing is 1-based
// (display order); internal access is by slice position.
type Catalog struct {
	Items []ShopItem `json:"items"`
}

// ItemAt returns the item at the given 1-based index.
func (c *Catalog) ItemAt(index int) (*ShopItem, error) {
	if index < 1 || index > len(c.Items) {
		return nil, ErrInvalidIndex
	}
	return &c.Items[index-1], nil
}

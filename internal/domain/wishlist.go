package domain

import "time"

// WishlistItem is a product saved for later. The wishlist is product-level,
// not SKU-level: at most one entry exists per product id.
type WishlistItem struct {
	ID      string     `json:"id"` // product id
	Product ProductRef `json:"product"`
	AddedAt time.Time  `json:"added_at"`
}

package store

import "github.com/EugenioPantua19/designxcel-shopstate/internal/domain"

// mergeLineItems folds guest cart items into the user's cart. An incoming
// item whose line key matches an existing one adds its quantity to the base
// item; everything else is appended in incoming order. Base order is kept.
func mergeLineItems(base, incoming []domain.LineItem) []domain.LineItem {
	merged := make([]domain.LineItem, len(base))
	copy(merged, base)

	for _, in := range incoming {
		folded := false
		for i := range merged {
			if merged[i].ID == in.ID {
				merged[i].Quantity += in.Quantity
				folded = true
				break
			}
		}
		if !folded {
			merged = append(merged, in)
		}
	}
	return merged
}

// mergeWishlistItems appends guest wishlist items the user does not already
// have. On a duplicate product id the base item wins, keeping its AddedAt.
func mergeWishlistItems(base, incoming []domain.WishlistItem) []domain.WishlistItem {
	merged := make([]domain.WishlistItem, len(base))
	copy(merged, base)

	for _, in := range incoming {
		exists := false
		for i := range merged {
			if merged[i].ID == in.ID {
				exists = true
				break
			}
		}
		if !exists {
			merged = append(merged, in)
		}
	}
	return merged
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/domain"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/events"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/storage"
)

const wishlistNamespace = "wishlist"

// Wishlist is the saved-products store. Entries are keyed by product id with
// set semantics: adding an existing product is a no-op.
type Wishlist struct {
	sync *syncer[domain.WishlistItem]
}

func NewWishlist(st storage.Store, notifier events.Notifier, opts ...Option) *Wishlist {
	return &Wishlist{sync: newSyncer(syncConfig[domain.WishlistItem]{
		namespace: wishlistNamespace,
		encode:    encodeWishlist,
		decode:    decodeWishlist,
		merge:     mergeWishlistItems,
	}, st, notifier, opts...)}
}

// The wishlist persists as a bare JSON array, unlike the cart's wrapper
// object. See cartBlob.
func encodeWishlist(items []domain.WishlistItem) (string, error) {
	if items == nil {
		items = []domain.WishlistItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal wishlist failed: %w", err)
	}
	return string(b), nil
}

func decodeWishlist(raw string) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("unmarshal wishlist failed: %w", err)
	}
	return items, nil
}

// Add saves the product. If it is already on the wishlist nothing changes,
// in particular the original AddedAt stands.
func (w *Wishlist) Add(ctx context.Context, product domain.ProductRef) {
	w.sync.mutate(ctx, func(items []domain.WishlistItem) ([]domain.WishlistItem, bool) {
		for i := range items {
			if items[i].ID == product.ID {
				return items, false
			}
		}
		return append(items, newWishlistItem(product)), true
	})
}

// Remove deletes the product from the wishlist. Absent ids are a no-op.
func (w *Wishlist) Remove(ctx context.Context, productID string) {
	w.sync.mutate(ctx, func(items []domain.WishlistItem) ([]domain.WishlistItem, bool) {
		for i := range items {
			if items[i].ID == productID {
				return append(items[:i], items[i+1:]...), true
			}
		}
		return items, false
	})
}

// Toggle removes the product when present and adds it otherwise.
func (w *Wishlist) Toggle(ctx context.Context, product domain.ProductRef) {
	w.sync.mutate(ctx, func(items []domain.WishlistItem) ([]domain.WishlistItem, bool) {
		for i := range items {
			if items[i].ID == product.ID {
				return append(items[:i], items[i+1:]...), true
			}
		}
		return append(items, newWishlistItem(product)), true
	})
}

// Contains reports whether the product is on the wishlist.
func (w *Wishlist) Contains(productID string) bool {
	for _, item := range w.sync.Items() {
		if item.ID == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Clear(ctx context.Context) {
	w.sync.mutate(ctx, func([]domain.WishlistItem) ([]domain.WishlistItem, bool) {
		return nil, true
	})
}

func (w *Wishlist) Items() []domain.WishlistItem {
	return w.sync.Items()
}

func (w *Wishlist) Count() int {
	return len(w.sync.Items())
}

func (w *Wishlist) SetIdentity(ctx context.Context, identity domain.Identity) {
	w.sync.SetIdentity(ctx, identity)
}

func (w *Wishlist) Refresh(ctx context.Context) {
	w.sync.Refresh(ctx)
}

func (w *Wishlist) Loading() bool {
	return w.sync.Loading()
}

func (w *Wishlist) Identity() domain.Identity {
	return w.sync.Identity()
}

func (w *Wishlist) Close() {
	w.sync.Close()
}

func newWishlistItem(product domain.ProductRef) domain.WishlistItem {
	return domain.WishlistItem{
		ID:      product.ID,
		Product: product,
		AddedAt: time.Now().UTC(),
	}
}

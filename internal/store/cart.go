package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/domain"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/events"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/storage"
)

const cartNamespace = "shopping-cart"

// cartBlob is the persisted cart shape. The wishlist stores a bare array
// instead; the asymmetry is load-bearing for blobs written by the frontend.
type cartBlob struct {
	Items []domain.LineItem `json:"items"`
}

// Cart is the shopping cart store: an in-memory line item list that writes
// through to storage under the current identity's key.
type Cart struct {
	sync *syncer[domain.LineItem]
}

func NewCart(st storage.Store, notifier events.Notifier, opts ...Option) *Cart {
	return &Cart{sync: newSyncer(syncConfig[domain.LineItem]{
		namespace: cartNamespace,
		encode:    encodeCart,
		decode:    decodeCart,
		merge:     mergeLineItems,
	}, st, notifier, opts...)}
}

func encodeCart(items []domain.LineItem) (string, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	b, err := json.Marshal(cartBlob{Items: items})
	if err != nil {
		return "", fmt.Errorf("marshal cart failed: %w", err)
	}
	return string(b), nil
}

func decodeCart(raw string) ([]domain.LineItem, error) {
	var blob cartBlob
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return blob.Items, nil
}

// AddItem folds the product into an existing line item when the product,
// variation and customization match, otherwise appends a new line. The unit
// price is captured here and not recomputed later.
func (c *Cart) AddItem(ctx context.Context, product domain.ProductRef, quantity int, customization map[string]string) {
	fingerprint := domain.Fingerprint(customization)
	id := domain.LineKey(product.ID, product.VariationID, fingerprint)

	c.sync.mutate(ctx, func(items []domain.LineItem) ([]domain.LineItem, bool) {
		for i := range items {
			if items[i].ID == id {
				items[i].Quantity += quantity
				return items, true
			}
		}
		return append(items, domain.LineItem{
			ID:            id,
			Product:       product,
			Quantity:      quantity,
			UnitPrice:     product.EffectivePrice(),
			VariationID:   product.VariationID,
			VariationName: product.VariationName,
			Customization: fingerprint,
		}), true
	})
}

// RemoveItem deletes the line item with the given id. Absent ids are a no-op.
func (c *Cart) RemoveItem(ctx context.Context, id string) {
	c.sync.mutate(ctx, func(items []domain.LineItem) ([]domain.LineItem, bool) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), true
			}
		}
		return items, false
	})
}

// UpdateQuantity sets the quantity of a line item, preserving its variation
// and customization. A quantity of zero or less removes the item.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(ctx, id)
		return
	}

	c.sync.mutate(ctx, func(items []domain.LineItem) ([]domain.LineItem, bool) {
		for i := range items {
			if items[i].ID == id {
				items[i].Quantity = quantity
				return items, true
			}
		}
		return items, false
	})
}

func (c *Cart) Clear(ctx context.Context) {
	c.sync.mutate(ctx, func([]domain.LineItem) ([]domain.LineItem, bool) {
		return nil, true
	})
}

func (c *Cart) Items() []domain.LineItem {
	return c.sync.Items()
}

// Count is the total number of units across all line items.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.sync.Items() {
		total += item.Quantity
	}
	return total
}

// Subtotal sums unit price times quantity over all line items.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, item := range c.sync.Items() {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

func (c *Cart) SetIdentity(ctx context.Context, identity domain.Identity) {
	c.sync.SetIdentity(ctx, identity)
}

func (c *Cart) Refresh(ctx context.Context) {
	c.sync.Refresh(ctx)
}

func (c *Cart) Loading() bool {
	return c.sync.Loading()
}

func (c *Cart) Identity() domain.Identity {
	return c.sync.Identity()
}

func (c *Cart) Close() {
	c.sync.Close()
}

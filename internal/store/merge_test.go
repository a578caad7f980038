package store

import (
	"testing"
	"time"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func line(id string, qty int) domain.LineItem {
	return domain.LineItem{ID: id, Quantity: qty, UnitPrice: 10}
}

func TestMergeLineItems_EmptyIncomingIsIdentity(t *testing.T) {
	base := []domain.LineItem{line("a", 2), line("b", 1)}

	merged := mergeLineItems(base, nil)

	assert.Equal(t, base, merged)
}

func TestMergeLineItems_EmptyBaseTakesIncoming(t *testing.T) {
	incoming := []domain.LineItem{line("a", 2), line("b", 1)}

	merged := mergeLineItems(nil, incoming)

	assert.Equal(t, incoming, merged)
}

func TestMergeLineItems_QuantitiesAdd(t *testing.T) {
	base := []domain.LineItem{line("k", 2)}
	incoming := []domain.LineItem{line("k", 3)}

	merged := mergeLineItems(base, incoming)

	assert.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].Quantity)
}

func TestMergeLineItems_BaseFieldsWinOnFold(t *testing.T) {
	base := []domain.LineItem{{ID: "k", Quantity: 1, UnitPrice: 100, VariationName: "Oak"}}
	incoming := []domain.LineItem{{ID: "k", Quantity: 2, UnitPrice: 80, VariationName: "Walnut"}}

	merged := mergeLineItems(base, incoming)

	assert.Len(t, merged, 1)
	assert.Equal(t, 3, merged[0].Quantity)
	assert.Equal(t, 100.0, merged[0].UnitPrice)
	assert.Equal(t, "Oak", merged[0].VariationName)
}

func TestMergeLineItems_AppendsKeepOrder(t *testing.T) {
	base := []domain.LineItem{line("a", 1), line("b", 1)}
	incoming := []domain.LineItem{line("c", 1), line("a", 1), line("d", 1)}

	merged := mergeLineItems(base, incoming)

	ids := make([]string, len(merged))
	for i, item := range merged {
		ids[i] = item.ID
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	assert.Equal(t, 2, merged[0].Quantity)
}

func TestMergeLineItems_DoesNotMutateBase(t *testing.T) {
	base := []domain.LineItem{line("k", 2)}
	mergeLineItems(base, []domain.LineItem{line("k", 3)})

	assert.Equal(t, 2, base[0].Quantity)
}

func wish(id string, addedAt time.Time) domain.WishlistItem {
	return domain.WishlistItem{ID: id, AddedAt: addedAt}
}

func TestMergeWishlistItems_AppendsInOrder(t *testing.T) {
	now := time.Now()
	base := []domain.WishlistItem{wish("1", now)}
	incoming := []domain.WishlistItem{wish("2", now)}

	merged := mergeWishlistItems(base, incoming)

	assert.Len(t, merged, 2)
	assert.Equal(t, "1", merged[0].ID)
	assert.Equal(t, "2", merged[1].ID)
}

func TestMergeWishlistItems_BaseWinsOnDuplicate(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	base := []domain.WishlistItem{wish("1", t1)}
	incoming := []domain.WishlistItem{wish("1", t2)}

	merged := mergeWishlistItems(base, incoming)

	assert.Len(t, merged, 1)
	assert.Equal(t, t1, merged[0].AddedAt)
}

func TestMergeWishlistItems_EmptyIncomingIsIdentity(t *testing.T) {
	now := time.Now()
	base := []domain.WishlistItem{wish("1", now), wish("2", now)}

	merged := mergeWishlistItems(base, nil)

	assert.Equal(t, base, merged)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Empty(t *testing.T) {
	assert.Equal(t, "{}", Fingerprint(nil))
	assert.Equal(t, "{}", Fingerprint(map[string]string{}))
}

func TestFingerprint_KeyOrderIndependent(t *testing.T) {
	a := map[string]string{"color": "oak", "legs": "steel", "width": "160"}
	b := map[string]string{"width": "160", "legs": "steel", "color": "oak"}
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestLineKey_Deterministic(t *testing.T) {
	fp := Fingerprint(map[string]string{"color": "walnut"})
	k1 := LineKey("desk-1", "var-2", fp)
	k2 := LineKey("desk-1", "var-2", fp)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 16)
}

func TestLineKey_DistinguishesDimensions(t *testing.T) {
	fp := Fingerprint(nil)
	base := LineKey("desk-1", "var-2", fp)
	assert.NotEqual(t, base, LineKey("desk-2", "var-2", fp))
	assert.NotEqual(t, base, LineKey("desk-1", "var-3", fp))
	assert.NotEqual(t, base, LineKey("desk-1", "var-2", Fingerprint(map[string]string{"color": "oak"})))
}

func TestEffectivePrice(t *testing.T) {
	assert.Equal(t, 100.0, ProductRef{Price: 100}.EffectivePrice())
	assert.Equal(t, 80.0, ProductRef{Price: 100, DiscountPrice: 80, OnSale: true}.EffectivePrice())
	// discount present but not active
	assert.Equal(t, 100.0, ProductRef{Price: 100, DiscountPrice: 80}.EffectivePrice())
}

func TestIdentity(t *testing.T) {
	assert.True(t, IdentityLoading.IsLoading())
	assert.True(t, IdentityGuest.IsGuest())
	assert.False(t, IdentityGuest.IsUser())
	assert.True(t, Identity("user42").IsUser())
	assert.False(t, Identity("").IsUser())
}

func TestIsLoginTransition(t *testing.T) {
	assert.True(t, IsLoginTransition(IdentityGuest, "user42"))
	assert.False(t, IsLoginTransition(IdentityGuest, IdentityGuest))
	assert.False(t, IsLoginTransition(IdentityGuest, IdentityLoading))
	assert.False(t, IsLoginTransition(IdentityLoading, "user42"))
	assert.False(t, IsLoginTransition("user42", "user43"))
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "shopping-cart-guest", StorageKey("shopping-cart", IdentityGuest))
	assert.Equal(t, "wishlist-user42", StorageKey("wishlist", "user42"))
}

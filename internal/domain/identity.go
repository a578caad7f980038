package domain

// Identity is the actor a shopping store is scoped to. It is either one of
// the two sentinels below or an opaque user id supplied by the auth layer.
type Identity string

const (
	// IdentityLoading means the auth layer has not resolved the actor yet.
	// Stores must not touch persistent storage while this is current.
	IdentityLoading Identity = "loading"

	// IdentityGuest is the anonymous shopper identity.
	IdentityGuest Identity = "guest"
)

func (i Identity) IsLoading() bool {
	return i == IdentityLoading
}

func (i Identity) IsGuest() bool {
	return i == IdentityGuest
}

// IsUser reports whether the identity is a concrete authenticated user.
func (i Identity) IsUser() bool {
	return i != "" && !i.IsLoading() && !i.IsGuest()
}

// IsLoginTransition reports whether moving from prev to next is a guest
// logging in, which is the only transition that triggers a state merge.
func IsLoginTransition(prev, next Identity) bool {
	return prev.IsGuest() && next.IsUser()
}

// StorageKey builds the persistent storage key for a store namespace and
// identity, e.g. "shopping-cart-guest" or "wishlist-user42".
func StorageKey(namespace string, identity Identity) string {
	return namespace + "-" + string(identity)
}

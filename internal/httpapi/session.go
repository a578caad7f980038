package httpapi

import (
	"sync"
	"time"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/events"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/storage"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/store"
)

// sessionIdleTTL is how long a session may sit untouched before the registry
// retires it. Guest state survives eviction because it is persisted under the
// session-scoped guest key and reloads on the next request.
const sessionIdleTTL = 30 * time.Minute

// Session is one shopper's store pair. Both stores share the storage backend
// and the login-event channel; their identity follows the request headers.
// Guest state is scoped to the session id so anonymous shoppers never share
// a blob on the common backend.
type Session struct {
	Cart     *store.Cart
	Wishlist *store.Wishlist
}

func (s *Session) close() {
	s.Cart.Close()
	s.Wishlist.Close()
}

type sessionEntry struct {
	sess     *Session
	lastSeen time.Time
}

// SessionRegistry creates and caches a Session per session id. Stores are
// constructed explicitly here, never looked up through globals. Idle sessions
// are swept out on access so the map and the bus subscriber set stay bounded.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	idleTTL  time.Duration

	storage  storage.Store
	notifier events.Notifier
}

func NewSessionRegistry(st storage.Store, notifier events.Notifier) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*sessionEntry),
		idleTTL:  sessionIdleTTL,
		storage:  st,
		notifier: notifier,
	}
}

func (r *SessionRegistry) Session(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.evictIdleLocked(now)

	if entry, exists := r.sessions[id]; exists {
		entry.lastSeen = now
		return entry.sess
	}

	sess := &Session{
		Cart:     store.NewCart(r.storage, r.notifier, store.WithGuestScope(id)),
		Wishlist: store.NewWishlist(r.storage, r.notifier, store.WithGuestScope(id)),
	}
	r.sessions[id] = &sessionEntry{sess: sess, lastSeen: now}
	return sess
}

func (r *SessionRegistry) evictIdleLocked(now time.Time) {
	for id, entry := range r.sessions {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			entry.sess.close()
			delete(r.sessions, id)
		}
	}
}

// Close releases every session's login-event subscription.
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.sessions {
		entry.sess.close()
	}
	r.sessions = make(map[string]*sessionEntry)
}

package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/domain"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/events"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/storage"
)

type syncConfig[T any] struct {
	namespace string
	encode    func([]T) (string, error)
	decode    func(string) ([]T, error)
	merge     func(base, incoming []T) []T
}

// Option configures a store at construction time.
type Option func(*syncSettings)

type syncSettings struct {
	guestScope string
}

// WithGuestScope suffixes the guest storage key with the given scope, usually
// a session id. On a shared backend this keeps concurrent anonymous shoppers
// from writing through to one common guest blob; without a scope the bare
// "<namespace>-guest" key is used, which fits a single-shopper backend such
// as browser local storage.
func WithGuestScope(scope string) Option {
	return func(s *syncSettings) {
		s.guestScope = scope
	}
}

// syncer owns the identity-driven load/merge/persist protocol shared by the
// cart and wishlist stores. All operations serialize under one mutex, so a
// reload always runs to completion before the next mutation is accepted.
type syncer[T any] struct {
	mu  sync.Mutex
	cfg syncConfig[T]
	st  storage.Store

	identity    domain.Identity
	loading     bool
	guestScope  string
	items       []T
	unsubscribe func()
}

func newSyncer[T any](cfg syncConfig[T], st storage.Store, notifier events.Notifier, opts ...Option) *syncer[T] {
	var settings syncSettings
	for _, opt := range opts {
		opt(&settings)
	}

	s := &syncer[T]{
		cfg:        cfg,
		st:         st,
		identity:   domain.IdentityLoading,
		loading:    true,
		guestScope: settings.guestScope,
	}

	// A login event re-reads this store's own key so a login on another
	// device becomes visible here. Events for other users are dropped: the
	// notifier is shared, and acting on a stranger's login must not touch
	// this store's state.
	if notifier != nil {
		s.unsubscribe = notifier.Subscribe(func(event events.LoginEvent) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			s.handleLogin(ctx, event)
		})
	}

	return s
}

// SetIdentity moves the store to a new identity. The loading sentinel
// suspends all storage traffic; any concrete identity triggers a reload,
// merging guest state in when this is a login transition.
func (s *syncer[T]) SetIdentity(ctx context.Context, next domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if next == "" || next.IsLoading() {
		s.loading = true
		return
	}

	prev := s.identity
	s.identity = next
	s.loading = false
	if prev == next {
		return
	}

	s.load(ctx, domain.IsLoginTransition(prev, next))
}

// Refresh re-reads storage for the current identity. It never consumes the
// guest blob: the merge happens exactly once, inside the guest-to-user
// SetIdentity call, so a refresh cannot pull another shopper's guest state
// into an already authenticated store.
func (s *syncer[T]) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return
	}
	s.load(ctx, false)
}

// handleLogin reacts to a login-success notification. Only an event for this
// store's own user triggers a re-read.
func (s *syncer[T]) handleLogin(ctx context.Context, event events.LoginEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading || domain.Identity(event.UserID) != s.identity {
		return
	}
	s.load(ctx, false)
}

// key resolves the storage key for an identity, applying the guest scope.
func (s *syncer[T]) key(id domain.Identity) string {
	k := domain.StorageKey(s.cfg.namespace, id)
	if id.IsGuest() && s.guestScope != "" {
		k += "-" + s.guestScope
	}
	return k
}

func (s *syncer[T]) load(ctx context.Context, mergeGuest bool) {
	items := s.read(ctx, s.key(s.identity))

	if mergeGuest {
		guestKey := s.key(domain.IdentityGuest)
		raw, err := s.st.Get(ctx, guestKey)
		if err == nil {
			guestItems, decodeErr := s.cfg.decode(raw)
			if decodeErr != nil {
				log.Printf("decode guest %s state: %v", s.cfg.namespace, decodeErr)
			}
			s.items = s.cfg.merge(items, guestItems)
			// Persist under the user key before dropping the guest key so
			// the merged state is never the only copy in memory.
			s.persistLocked(ctx)
			if removeErr := s.st.Remove(ctx, guestKey); removeErr != nil {
				log.Printf("remove guest %s state: %v", s.cfg.namespace, removeErr)
			}
			return
		}
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("read guest %s state: %v", s.cfg.namespace, err)
		}
	}

	// A non-empty in-memory list is never replaced by an empty blob: items
	// added before identity resolution completed survive the load.
	if len(items) == 0 && len(s.items) > 0 {
		return
	}
	s.items = items
}

// read loads and decodes one blob. Missing keys, storage errors and corrupt
// JSON all collapse to "no stored state".
func (s *syncer[T]) read(ctx context.Context, key string) []T {
	raw, err := s.st.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("read %s: %v", key, err)
		}
		return nil
	}

	items, err := s.cfg.decode(raw)
	if err != nil {
		log.Printf("decode %s: %v", key, err)
		return nil
	}
	return items
}

// mutate applies fn to the item list and writes the whole state through when
// fn reports a change.
func (s *syncer[T]) mutate(ctx context.Context, fn func([]T) ([]T, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(s.items)
	if !changed {
		return
	}
	s.items = next
	s.persistLocked(ctx)
}

func (s *syncer[T]) persistLocked(ctx context.Context) {
	if s.loading {
		return // never persist under the loading sentinel
	}

	value, err := s.cfg.encode(s.items)
	if err != nil {
		log.Printf("encode %s state: %v", s.cfg.namespace, err)
		return
	}

	// Persistence is a side effect, not a precondition: the in-memory state
	// stands even when the write fails.
	if err := s.st.Set(ctx, s.key(s.identity), value); err != nil {
		log.Printf("persist %s state: %v", s.cfg.namespace, err)
	}
}

// Items returns a copy of the current item list.
func (s *syncer[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *syncer[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *syncer[T]) Identity() domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Close releases the login-event subscription.
func (s *syncer[T]) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

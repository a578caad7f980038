package events

import "sync"

// Bus is an in-process Notifier. Publish delivers synchronously to every
// subscriber in subscription order.
type Bus struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]func(LoginEvent)
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[int]func(LoginEvent))}
}

func (b *Bus) Subscribe(fn func(LoginEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

func (b *Bus) Publish(event LoginEvent) {
	b.mu.Lock()
	fns := make([]func(LoginEvent), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	// Deliver outside the lock so a handler can unsubscribe itself.
	for _, fn := range fns {
		fn(event)
	}
}

package tabsync

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// LocalBus is an in-process rendezvous for LocalBroadcaster instances. It
// backs tests and runs without Redis, where no other process exists anyway.
type LocalBus struct {
	mu          sync.Mutex
	subscribers map[string]Handler
}

// NewLocalBus creates an empty bus.
func NewLocalBus() *LocalBus {
	return &LocalBus{subscribers: make(map[string]Handler)}
}

func (b *LocalBus) publish(ctx context.Context, origin string) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subscribers))
	for o, h := range b.subscribers {
		if o != origin {
			handlers = append(handlers, h)
		}
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(ctx)
	}
}

func (b *LocalBus) subscribe(origin string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[origin] = h
}

func (b *LocalBus) unsubscribe(origin string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, origin)
}

// LocalBroadcaster implements Broadcaster over a shared LocalBus. Handlers
// run synchronously in the publisher's goroutine.
type LocalBroadcaster struct {
	bus    *LocalBus
	origin string
}

// NewLocalBroadcaster creates a broadcaster attached to the given bus.
func NewLocalBroadcaster(bus *LocalBus) *LocalBroadcaster {
	return &LocalBroadcaster{
		bus:    bus,
		origin: uuid.New().String(),
	}
}

func (b *LocalBroadcaster) Publish(ctx context.Context) error {
	b.bus.publish(ctx, b.origin)
	return nil
}

func (b *LocalBroadcaster) Subscribe(ctx context.Context, h Handler) error {
	b.bus.subscribe(b.origin, h)
	return nil
}

func (b *LocalBroadcaster) Close() error {
	b.bus.unsubscribe(b.origin)
	return nil
}

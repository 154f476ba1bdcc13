package tabsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster implements Broadcaster on a Redis pub/sub channel scoped
// to the profile. Each instance carries a random origin ID so it can drop
// its own publications.
type RedisBroadcaster struct {
	client  *redis.Client
	channel string
	origin  string
	logger  *slog.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
}

// NewRedisBroadcaster creates a broadcaster on the profile's channel.
func NewRedisBroadcaster(client *redis.Client, profile string, logger *slog.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{
		client:  client,
		channel: fmt.Sprintf("storefront:%s:guest-cart", profile),
		origin:  uuid.New().String(),
		logger:  logger,
	}
}

// Publish announces a guest-cart change to every other subscribed process.
func (b *RedisBroadcaster) Publish(ctx context.Context) error {
	if err := b.client.Publish(ctx, b.channel, b.origin).Err(); err != nil {
		return fmt.Errorf("publish guest cart change: %w", err)
	}
	return nil
}

// Subscribe starts a goroutine delivering changes from other processes to
// the handler until the context is canceled or Close is called.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, h Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pubsub != nil {
		return fmt.Errorf("already subscribed to %s", b.channel)
	}

	pubsub := b.client.Subscribe(ctx, b.channel)
	// Force the subscription to be established before returning.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("subscribe to %s: %w", b.channel, err)
	}
	b.pubsub = pubsub

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg.Payload == b.origin {
					continue
				}
				b.logger.DebugContext(ctx, "guest cart change received",
					slog.String("channel", b.channel),
				)
				h(ctx)
			}
		}
	}()

	return nil
}

// Close stops delivery.
func (b *RedisBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pubsub == nil {
		return nil
	}
	err := b.pubsub.Close()
	b.pubsub = nil
	return err
}

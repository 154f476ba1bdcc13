// Package tabsync propagates guest-cart changes between client processes
// sharing a profile. Delivery is best effort and unordered: the last write
// observed in the credential store wins. It is not a consistency mechanism.
package tabsync

import "context"

// Handler is invoked when another process reports a guest-cart change. The
// receiver re-reads the guest cart from the credential store.
type Handler func(ctx context.Context)

// Broadcaster publishes and receives guest-cart change notifications.
// A broadcaster never delivers its own publications to itself, mirroring
// browser storage events which fire only in other tabs.
type Broadcaster interface {
	// Publish announces that the guest cart changed.
	Publish(ctx context.Context) error

	// Subscribe registers the handler and starts delivering notifications
	// until the context is canceled or Close is called.
	Subscribe(ctx context.Context, h Handler) error

	// Close stops delivery and releases resources.
	Close() error
}

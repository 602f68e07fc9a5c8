package events

import "context"

// Publisher publishes memory operation events to a notification backend.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

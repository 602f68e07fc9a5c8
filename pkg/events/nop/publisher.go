// Package nop provides a no-op events publisher used for tests and for
// running the service with notifications disabled.
package nop

import (
	"context"

	"github.com/mnemo-ai/mnemo/pkg/events"
)

// Publisher is a no-op events publisher.
type Publisher struct{}

// NewPublisher creates a new no-op events publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish does nothing.
func (p *Publisher) Publish(_ context.Context, _ events.Event) error {
	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}

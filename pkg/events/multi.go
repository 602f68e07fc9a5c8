package events

import (
	"context"
	"errors"
)

// multiPublisher fans every event out to multiple backends, e.g. the
// WebSocket hub plus a Kafka mirror.
type multiPublisher struct {
	publishers []Publisher
}

// Multi combines publishers into one. Publish and Close visit every backend
// and join the errors; one failing backend does not short-circuit the rest.
func Multi(publishers ...Publisher) Publisher {
	return &multiPublisher{publishers: publishers}
}

func (m *multiPublisher) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m *multiPublisher) Close() error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

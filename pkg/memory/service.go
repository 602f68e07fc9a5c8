package memory

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/pkg/events"
)

// Service is the mutation API over a Store. Every mutation follows the same
// sequence: load-or-default, reconcile, persist, notify. Persistence failures
// propagate to the caller after a best-effort error-tagged notification; they
// are never swallowed here.
//
// The service does not serialize operations per key. Two in-flight mutations
// for the same key can interleave between their load and save, and the save
// that completes last determines the final on-disk state.
type Service struct {
	store  Store
	events events.Publisher
	logger *zap.Logger

	// now is the server clock for timestamps and events, overridable in tests.
	now func() time.Time
}

// NewService creates a mutation service over the given store, publishing one
// event per mutation outcome to the given publisher.
func NewService(store Store, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		events: publisher,
		logger: logger,
		now:    time.Now,
	}
}

// LoadMemory is a read passthrough to the store. It never synthesizes a
// default document: absence comes back as ErrNotFound alongside a
// memory_not_found notification. Malformed documents are an error, not
// absence, and emit no event.
func (s *Service) LoadMemory(ctx context.Context, key string) (*Document, error) {
	doc, err := s.store.Load(ctx, key)
	if err != nil {
		if IsNotFound(err) {
			s.emit(ctx, key, events.OpMemoryNotFound)
			return nil, err
		}
		return nil, err
	}

	s.emit(ctx, key, events.OpMemoryLoaded)

	return doc, nil
}

// UpdateUserMemory shallow-merges a patch into the key's user_memory,
// creating the document from defaults when absent.
func (s *Service) UpdateUserMemory(ctx context.Context, key string, patch UserPatch) error {
	err := s.mutate(ctx, key, func(existing *Document) *Document {
		return ReconcileUser(existing, patch, s.now())
	})
	if err != nil {
		s.emit(ctx, key, events.OpUserMemoryUpdateError)
		return fmt.Errorf("updating user memory for %s: %w", key, err)
	}

	s.emit(ctx, key, events.OpUserMemoryUpdated)

	return nil
}

// UpdateEntityMemory shallow-merges a patch into the key's entity_memory.
// The record model holds exactly one entity slot.
func (s *Service) UpdateEntityMemory(ctx context.Context, key string, patch EntityPatch) error {
	err := s.mutate(ctx, key, func(existing *Document) *Document {
		return ReconcileEntity(existing, patch, s.now())
	})
	if err != nil {
		s.emit(ctx, key, events.OpEntityMemoryUpdateError)
		return fmt.Errorf("updating entity memory for %s: %w", key, err)
	}

	s.emit(ctx, key, events.OpEntityMemoryUpdated)

	return nil
}

// AddConversationMessage appends one transcript entry with a server-assigned
// timestamp.
func (s *Service) AddConversationMessage(ctx context.Context, key string, msg Message) error {
	err := s.mutate(ctx, key, func(existing *Document) *Document {
		return AppendMessage(existing, msg, s.now())
	})
	if err != nil {
		s.emit(ctx, key, events.OpConversationMessageError)
		return fmt.Errorf("adding conversation message for %s: %w", key, err)
	}

	s.emit(ctx, key, events.OpConversationMessageAdded)

	return nil
}

// ListKeys returns the keys with a persisted document. No notification is
// emitted; listing is not a memory operation.
func (s *Service) ListKeys(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// mutate runs one load-or-default / reconcile / persist cycle. A malformed
// persisted document aborts the mutation rather than being silently
// overwritten with defaults.
func (s *Service) mutate(ctx context.Context, key string, reconcile func(*Document) *Document) error {
	existing, err := s.store.Load(ctx, key)
	if err != nil && !IsNotFound(err) {
		return err
	}

	doc := reconcile(existing)

	if err := s.store.Save(ctx, key, doc); err != nil {
		s.emit(ctx, key, events.OpMemorySaveError)
		return err
	}

	s.emit(ctx, key, events.OpMemorySaved)

	return nil
}

// emit sends a best-effort notification. Publish failures never affect the
// mutation outcome.
func (s *Service) emit(ctx context.Context, key string, op events.Operation) {
	ev := events.New(key, op, s.now())
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Debug("event publish failed",
			zap.String("key", key),
			zap.String("operation", string(op)),
			zap.Error(err),
		)
	}
}

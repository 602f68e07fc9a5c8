package memory

import "context"

// Store defines the interface for persisting and retrieving memory documents
// in a storage backend. The store owns only the durable representation; merge
// logic lives in the reconcile functions and the Service.
type Store interface {
	// Load retrieves the document for a key. Returns ErrNotFound when no
	// document exists (including malformed keys) and ErrMalformed when
	// persisted content cannot be decoded.
	Load(ctx context.Context, key string) (*Document, error)

	// Save persists a full document snapshot for a key, overwriting any
	// prior snapshot. The store performs no locking: concurrent saves for
	// the same key race and the last one to complete wins.
	Save(ctx context.Context, key string, doc *Document) error

	// List returns the keys that currently have a persisted document.
	List(ctx context.Context) ([]string, error)

	// Close releases store resources.
	Close() error
}

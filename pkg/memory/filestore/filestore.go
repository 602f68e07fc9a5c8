// Package filestore persists memory documents as one JSON file per key,
// named <key>_memory.json under a configured directory.
//
// The store applies no locking and serializes nothing: every save is a
// full-document overwrite, and concurrent saves for the same key are
// last-write-wins. A failed write leaves the prior snapshot untouched at the
// logical level, though an interrupted write can still corrupt the file
// itself — corrupt files surface as memory.ErrMalformed on the next load.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/pkg/memory"
)

const fileSuffix = "_memory.json"

// Store implements memory.Store on the local filesystem.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates a file store rooted at dir. The directory is created eagerly
// but best-effort: a failure here is logged, and individual saves retry the
// creation (idempotently) before writing.
func New(dir string, logger *zap.Logger) *Store {
	s := &Store{
		dir:    dir,
		logger: logger,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("creating memory directory failed",
			zap.String("dir", dir),
			zap.Error(err),
		)
	}

	return s
}

// Load reads and decodes the document for key. A missing file — or a key
// that could never name a file — is memory.ErrNotFound; a file that exists
// but does not decode is memory.ErrMalformed.
func (s *Store) Load(_ context.Context, key string) (*memory.Document, error) {
	if !validKey(key) {
		return nil, memory.ErrNotFound{Key: key}
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, memory.ErrNotFound{Key: key}
		}
		return nil, fmt.Errorf("reading memory for %s: %w", key, err)
	}

	var doc memory.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, memory.ErrMalformed{Key: key, Err: err}
	}

	return &doc, nil
}

// Save persists a full snapshot for key, overwriting any prior one.
func (s *Store) Save(_ context.Context, key string, doc *memory.Document) error {
	if !validKey(key) {
		return fmt.Errorf("invalid memory key: %q", key)
	}

	if doc == nil {
		return errors.New("cannot save nil document")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating memory directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding memory for %s: %w", key, err)
	}

	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("writing memory for %s: %w", key, err)
	}

	return nil
}

// List returns every key with a persisted document. A store whose directory
// was never created simply has no keys.
func (s *Store) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing memory directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileSuffix))
	}

	return keys, nil
}

// Close is a no-op for the file store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+fileSuffix)
}

// validKey rejects keys that would escape the store directory or name no
// file at all.
func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}

	return !strings.ContainsAny(key, `/\`)
}

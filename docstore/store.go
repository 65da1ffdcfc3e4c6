package docstore

import (
	"fmt"
	"time"

	"github.com/printshop/docstore/docstore/storage"
	"github.com/printshop/docstore/types"
)

// Store owns the collections of one logical document store. It is
// constructed once at process start and passed to whoever needs it;
// there is no hidden process-wide instance. All mutations run under a
// single lock manager, and when a backing file is configured every
// mutation persists the whole snapshot atomically before it returns.
type Store struct {
	registry    *Registry
	lockManager *storage.LockManager
	backend     storage.Storage
	collections map[string]*Collection
	// pending holds documents loaded from disk for collections whose
	// schemas have not been defined yet. They are adopted at Define
	// time and written back verbatim on save so no data is dropped.
	pending  map[string][]types.Document
	metadata storage.Metadata
	timeFunc func() time.Time
}

// Option modifies a Store's configuration.
type Option func(*Store)

// WithStorage sets a custom storage backend. Useful for tests that
// inject failures; the default for a non-empty path is the JSON file
// backend.
func WithStorage(backend storage.Storage) Option {
	return func(s *Store) {
		s.backend = backend
	}
}

// WithTimeFunc sets a custom time source for deterministic snapshot
// metadata in tests.
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *Store) {
		s.timeFunc = fn
	}
}

// New creates a store. With a non-empty path the store is backed by a
// JSON file: existing data is loaded now, and every mutation saves the
// snapshot with an atomic write-temp-then-rename. With an empty path
// the store lives purely in memory.
func New(filePath string, opts ...Option) (*Store, error) {
	s := &Store{
		registry:    NewRegistry(),
		lockManager: storage.NewLockManager(),
		collections: make(map[string]*Collection),
		pending:     make(map[string][]types.Document),
		timeFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.backend == nil && filePath != "" {
		s.backend = storage.NewJSONFile(filePath, storage.WithTimeFunc(s.timeFunc))
	}

	now := s.timeFunc()
	s.metadata = storage.Metadata{Version: "1.0", CreatedAt: now, UpdatedAt: now}

	if s.backend != nil {
		data, err := s.backend.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load data: %w", err)
		}
		s.pending = data.Collections
		s.metadata = data.Metadata
	}
	return s, nil
}

// Define registers a schema and creates its collection. Documents
// previously loaded from disk for this collection name are adopted
// into it. Fails with *types.DuplicateSchemaError when the name is
// already defined.
func (s *Store) Define(name string, fields []types.FieldSpec) (*Collection, error) {
	result, err := s.lockManager.ExecuteWithResult(storage.WriteOperation, func() (interface{}, error) {
		schema, err := s.registry.Define(name, fields)
		if err != nil {
			return nil, err
		}

		col := newCollection(s, schema)
		for _, doc := range s.pending[name] {
			if id := doc.ID(); id != "" {
				col.docs[id] = doc
			}
		}
		delete(s.pending, name)
		s.collections[name] = col
		return col, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Collection), nil
}

// Collection returns the collection for a defined schema.
func (s *Store) Collection(name string) (*Collection, bool) {
	result, _ := s.lockManager.ExecuteWithResult(storage.ReadOperation, func() (interface{}, error) {
		return s.collections[name], nil
	})
	col := result.(*Collection)
	return col, col != nil
}

// Registry exposes the store's schema registry.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Close releases backend resources. In-memory stores close trivially.
func (s *Store) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// saveLocked persists the current snapshot. The caller must hold the
// write lock; mutators call this as the last step before returning so
// a failed save can roll the in-memory change back.
func (s *Store) saveLocked() error {
	if s.backend == nil {
		return nil
	}

	data := &storage.StoreData{
		Collections: make(map[string][]types.Document, len(s.collections)+len(s.pending)),
		Metadata:    s.metadata,
	}
	for name, col := range s.collections {
		data.Collections[name] = col.snapshotLocked()
	}
	for name, docs := range s.pending {
		data.Collections[name] = docs
	}
	return s.backend.Save(data)
}

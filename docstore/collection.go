package docstore

import (
	"fmt"
	"iter"
	"sort"

	"github.com/printshop/docstore/docstore/query"
	"github.com/printshop/docstore/docstore/storage"
	"github.com/printshop/docstore/internal/validation"
	"github.com/printshop/docstore/types"
)

// Collection is the set of documents for one schema, keyed by
// identifier. It is owned exclusively by its store: callers only ever
// receive clones of stored documents, and every mutation revalidates
// the full document before the write is committed, so an invalid
// in-memory mutation can never reach the store.
type Collection struct {
	store  *Store
	schema *types.Schema
	proc   query.Processor
	docs   map[string]types.Document
}

func newCollection(s *Store, schema *types.Schema) *Collection {
	return &Collection{
		store:  s,
		schema: schema,
		proc:   query.NewProcessor(schema),
		docs:   make(map[string]types.Document),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.schema.Name()
}

// Schema returns the collection's schema.
func (c *Collection) Schema() *types.Schema {
	return c.schema
}

// All returns a lazy sequence over the collection in ascending
// identifier order, the store's natural iteration order. Each yielded
// document is a clone. The read lock is held for the duration of the
// iteration, so the consuming loop must not call mutating operations.
func (c *Collection) All() iter.Seq[types.Document] {
	return func(yield func(types.Document) bool) {
		_ = c.store.lockManager.Execute(storage.ReadOperation, func() error {
			for _, id := range c.sortedIDsLocked() {
				if !yield(c.docs[id].Clone()) {
					return nil
				}
			}
			return nil
		})
	}
}

// Count returns the number of stored documents.
func (c *Collection) Count() int {
	result, _ := c.store.lockManager.ExecuteWithResult(storage.ReadOperation, func() (interface{}, error) {
		return len(c.docs), nil
	})
	return result.(int)
}

// List returns the documents matching the filter, sorted by the order
// clauses (ascending identifier when none are given), after offset and
// limit are applied. An empty result is an empty slice, never an error.
func (c *Collection) List(opts types.ListOptions) ([]types.Document, error) {
	var snapshot []types.Document
	_ = c.store.lockManager.Execute(storage.ReadOperation, func() error {
		snapshot = c.snapshotLocked()
		return nil
	})
	return c.proc.Execute(snapshot, opts)
}

// Get returns a clone of the document with the given identifier, or a
// *types.NotFoundError.
func (c *Collection) Get(id string) (types.Document, error) {
	doc, ok := c.lookup(id)
	if !ok {
		return nil, &types.NotFoundError{Collection: c.Name(), ID: id}
	}
	return doc, nil
}

// Create applies defaults to the caller's partial field set, validates
// the result, and inserts it. Fails with *types.ValidationError on any
// constraint violation and *types.DuplicateKeyError when the caller
// supplied an identifier that is already taken.
func (c *Collection) Create(fields types.Document) (types.Document, error) {
	doc := ApplyDefaults(c.schema, fields)
	if err := validation.ValidateDocument(c.schema, doc); err != nil {
		return nil, err
	}

	result, err := c.store.lockManager.ExecuteWithResult(storage.WriteOperation, func() (interface{}, error) {
		id := doc.ID()
		if _, exists := c.docs[id]; exists {
			return nil, &types.DuplicateKeyError{Collection: c.Name(), ID: id}
		}
		c.docs[id] = doc

		if err := c.store.saveLocked(); err != nil {
			delete(c.docs, id)
			return nil, fmt.Errorf("failed to save: %w", err)
		}
		return doc.Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(types.Document), nil
}

// Edit overwrites each key present in changes onto the stored document
// (shallow: an object value replaces the stored object wholesale, no
// deep merge), revalidates, and writes back. The whole sequence runs as
// read-modify-validate-write under the write lock, so a validation
// failure leaves the stored document untouched and concurrent edits
// cannot lose updates. The identifier is immutable through Edit.
func (c *Collection) Edit(id string, changes types.Document) (types.Document, error) {
	result, err := c.store.lockManager.ExecuteWithResult(storage.WriteOperation, func() (interface{}, error) {
		stored, exists := c.docs[id]
		if !exists {
			return nil, &types.NotFoundError{Collection: c.Name(), ID: id}
		}

		updated := stored.Clone()
		for key, value := range changes {
			if key == types.IDField {
				if newID, ok := value.(string); !ok || newID != id {
					return nil, &types.ValidationError{Field: types.IDField, Reason: "is immutable"}
				}
				continue
			}
			spec, known := c.schema.Field(key)
			if !known {
				// Unrecognized fields are dropped, same as on create.
				continue
			}
			updated[key] = pruneValue(spec, types.CloneValue(value))
		}

		if err := validation.ValidateDocument(c.schema, updated); err != nil {
			return nil, err
		}

		c.docs[id] = updated
		if err := c.store.saveLocked(); err != nil {
			c.docs[id] = stored
			return nil, fmt.Errorf("failed to save: %w", err)
		}
		return updated.Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(types.Document), nil
}

// Destroy removes the document with the given identifier. Fails with
// *types.NotFoundError when nothing was deleted. Nothing else is
// cleaned up: references to the deleted document elsewhere go dangling
// and are dropped lazily at population time.
func (c *Collection) Destroy(id string) error {
	return c.store.lockManager.Execute(storage.WriteOperation, func() error {
		stored, exists := c.docs[id]
		if !exists {
			return &types.NotFoundError{Collection: c.Name(), ID: id}
		}
		delete(c.docs, id)

		if err := c.store.saveLocked(); err != nil {
			c.docs[id] = stored
			return fmt.Errorf("failed to save: %w", err)
		}
		return nil
	})
}

// lookup returns a clone of a stored document under the read lock.
func (c *Collection) lookup(id string) (types.Document, bool) {
	result, _ := c.store.lockManager.ExecuteWithResult(storage.ReadOperation, func() (interface{}, error) {
		if doc, ok := c.docs[id]; ok {
			return doc.Clone(), nil
		}
		return nil, nil
	})
	if result == nil {
		return nil, false
	}
	return result.(types.Document), true
}

// snapshotLocked returns clones of all documents in ascending
// identifier order. Caller must hold a lock.
func (c *Collection) snapshotLocked() []types.Document {
	ids := c.sortedIDsLocked()
	docs := make([]types.Document, len(ids))
	for i, id := range ids {
		docs[i] = c.docs[id].Clone()
	}
	return docs
}

func (c *Collection) sortedIDsLocked() []string {
	ids := make([]string, 0, len(c.docs))
	for id := range c.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

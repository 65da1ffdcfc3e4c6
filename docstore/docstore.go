// Package docstore implements a small schema-validated document store.
// Collections of map-shaped documents are held in memory, optionally
// persisted to a JSON file, and queried through a minimal filter
// language with deterministic sort and pagination. Schemas declare
// field types, defaults, required and enum constraints, and
// cross-collection references that can be expanded into denormalized
// views via population.
package docstore

import "github.com/google/uuid"

// NewID produces a unique string identifier for a new document. The
// collision probability is negligible across a process lifetime, so no
// central sequence counter is needed. It is invoked once per created
// document, and only when the caller did not supply an identifier.
func NewID() string {
	return uuid.New().String()
}

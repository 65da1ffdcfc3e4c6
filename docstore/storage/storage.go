// Package storage provides the persistence layer for docstore: the
// on-disk JSON snapshot format, the file-locked backend that reads and
// writes it, and the in-process lock manager the engine serializes its
// operations with.
package storage

import (
	"time"

	"github.com/printshop/docstore/types"
)

// StoreData is the complete snapshot persisted to the backend: every
// collection's documents, keyed by collection name, plus metadata.
// Documents within a collection are stored in ascending identifier
// order so a snapshot diff is stable.
type StoreData struct {
	Collections map[string][]types.Document `json:"collections"`
	Metadata    Metadata                    `json:"metadata"`
}

// Metadata contains snapshot metadata.
type Metadata struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStoreData returns an empty snapshot stamped with the given time.
func NewStoreData(now time.Time) *StoreData {
	return &StoreData{
		Collections: make(map[string][]types.Document),
		Metadata: Metadata{
			Version:   "1.0",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// Storage is the low-level interface for batch persistence. The whole
// document set is loaded and saved as a single unit, which matches the
// JSON file backend's natural behavior.
type Storage interface {
	// Load reads the entire snapshot from the backend.
	Load() (*StoreData, error)

	// Save writes the entire snapshot to the backend.
	Save(data *StoreData) error

	// Close releases any resources held by the storage.
	Close() error
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/printshop/docstore/types"
)

const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// JSONFile is a Storage implementation backed by a single JSON file.
// Writes are atomic (write-temp-then-rename) so a crash mid-write never
// leaves a half-written snapshot, and a flock-based lock file guards
// against concurrent writers from other processes.
type JSONFile struct {
	filePath string
	fs       FileSystem
	fileLock FileLock
	timeFunc func() time.Time
}

// JSONFileOption modifies a JSONFile's configuration.
type JSONFileOption func(*JSONFile)

// WithFileSystem sets a custom FileSystem implementation.
func WithFileSystem(fs FileSystem) JSONFileOption {
	return func(j *JSONFile) {
		j.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation.
func WithFileLockFactory(factory FileLockFactory) JSONFileOption {
	return func(j *JSONFile) {
		j.fileLock = factory.New(j.filePath + ".lock")
	}
}

// WithTimeFunc sets a custom time source for deterministic metadata
// timestamps in tests.
func WithTimeFunc(fn func() time.Time) JSONFileOption {
	return func(j *JSONFile) {
		j.timeFunc = fn
	}
}

// NewJSONFile creates a JSON file storage for the given path.
func NewJSONFile(filePath string, opts ...JSONFileOption) *JSONFile {
	j := &JSONFile{
		filePath: filePath,
		timeFunc: time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	if j.fs == nil {
		j.fs = OSFileSystem{}
	}
	if j.fileLock == nil {
		j.fileLock = FlockFactory{}.New(filePath + ".lock")
	}
	return j
}

// acquireLock attempts to take the exclusive file lock with retries.
func (j *JSONFile) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := j.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}

// Load reads the snapshot file. A missing or empty file loads as an
// empty snapshot; that is how a fresh store starts.
func (j *JSONFile) Load() (*StoreData, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := j.acquireLock(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = j.fileLock.Unlock() }()

	if _, err := j.fs.Stat(j.filePath); errors.Is(err, os.ErrNotExist) {
		return NewStoreData(j.timeFunc()), nil
	}

	raw, err := j.fs.ReadFile(j.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(raw) == 0 {
		return NewStoreData(j.timeFunc()), nil
	}

	var data StoreData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if data.Collections == nil {
		data.Collections = make(map[string][]types.Document)
	}
	return &data, nil
}

// Save writes the snapshot atomically: marshal, write to a temp file,
// rename over the target. The temp file is removed if the rename fails.
func (j *JSONFile) Save(data *StoreData) error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := j.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = j.fileLock.Unlock() }()

	data.Metadata.UpdatedAt = j.timeFunc()

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tmpFile := j.filePath + ".tmp"
	if err := j.fs.WriteFile(tmpFile, raw, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := j.fs.Rename(tmpFile, j.filePath); err != nil {
		_ = j.fs.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Close removes the lock file.
func (j *JSONFile) Close() error {
	_ = j.fs.Remove(j.filePath + ".lock")
	return nil
}

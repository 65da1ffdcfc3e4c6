package storage

import "sync"

// OperationType defines whether an operation reads or writes store
// state, which determines the lock the LockManager takes for it.
type OperationType int

const (
	// ReadOperation only reads data; multiple reads run concurrently.
	ReadOperation OperationType = iota

	// WriteOperation modifies data and runs exclusively.
	WriteOperation
)

// LockManager centralizes the store's locking strategy behind a single
// RWMutex. Every store operation runs through Execute or
// ExecuteWithResult with the appropriate operation type, which keeps
// read-modify-write sequences (edit is one) from racing and avoids the
// lock/unlock/relock patterns that breed deadlocks.
type LockManager struct {
	mu sync.RWMutex
}

// NewLockManager creates a ready-to-use lock manager.
func NewLockManager() *LockManager {
	return &LockManager{}
}

// Execute runs fn under the lock appropriate for the operation type.
// The lock is released via defer, so it is dropped even if fn panics.
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}

// ExecuteWithResult is Execute for functions that also return a value.
// The caller type-asserts the returned interface value.
func (lm *LockManager) ExecuteWithResult(opType OperationType, fn func() (interface{}, error)) (interface{}, error) {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}

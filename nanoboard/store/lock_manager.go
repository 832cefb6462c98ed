package store

import "sync"

// operationType defines whether an operation is read or write.
type operationType int

const (
	// readOperation may run concurrently with other reads.
	readOperation operationType = iota

	// writeOperation is exclusive: no other read or write runs while it holds the lock.
	writeOperation
)

// lockManager centralizes the store's locking so every operation picks
// the right lock type and always releases it, even on panic.
//
// The engine is designed for a single writer driven by UI events, but the
// Go API is safe to share between goroutines (an HTTP adapter, a debounce
// timer, tests).
type lockManager struct {
	mu sync.RWMutex
}

// execute runs fn under a read or write lock depending on opType.
func (lm *lockManager) execute(opType operationType, fn func()) {
	switch opType {
	case readOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case writeOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	fn()
}

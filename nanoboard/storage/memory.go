package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps the slot content in process memory.
// It backs the "memory" storage backend and most tests.
type MemorySlot struct {
	mu      sync.RWMutex
	name    string
	data    []byte
	written bool

	// SaveError, when set, is returned by Save without writing.
	SaveError error
	// Saves counts successful writes.
	Saves int
}

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot(name string) *MemorySlot {
	if name == "" {
		name = DefaultSlotName
	}
	return &MemorySlot{name: name}
}

// Name implements Slot.Name
func (m *MemorySlot) Name() string {
	return m.name
}

// Load implements Slot.Load
func (m *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.written {
		return nil, ErrEmptySlot
	}
	return append([]byte(nil), m.data...), nil
}

// Save implements Slot.Save
func (m *MemorySlot) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	m.data = append([]byte(nil), data...)
	m.written = true
	m.Saves++
	return nil
}

// Close implements Slot.Close
func (m *MemorySlot) Close() error {
	return nil
}

// Bytes returns a copy of the current content and whether the slot was written.
func (m *MemorySlot) Bytes() ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]byte(nil), m.data...), m.written
}

// SaveCount returns the number of successful writes.
func (m *MemorySlot) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Saves
}

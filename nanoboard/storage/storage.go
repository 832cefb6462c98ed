// Package storage provides the persistence layer for nanoboard.
// The whole board tree is serialized into a single named slot, the way a
// browser app keeps its state in one localStorage key. Backends only move
// bytes in and out of the slot; encoding, validation and migration live here.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arthur-debert/nanoboard/types"
)

// DefaultSlotName is the slot the board tree is stored under.
const DefaultSlotName = "board-storage"

var (
	// ErrEmptySlot is returned by Load when the slot has never been written.
	ErrEmptySlot = errors.New("storage slot is empty")

	// ErrCorruptSlot is returned when slot content cannot be decoded into a valid tree.
	ErrCorruptSlot = errors.New("storage slot is corrupt")
)

// Slot is a single named, durable location holding a serialized tree.
type Slot interface {
	// Name returns the slot name
	Name() string

	// Load returns the raw slot content, or ErrEmptySlot if never written
	Load(ctx context.Context) ([]byte, error)

	// Save overwrites the slot content
	Save(ctx context.Context, data []byte) error

	// Close releases any resources held by the slot
	Close() error
}

// Persister loads and saves the decoded board tree.
type Persister interface {
	Load(ctx context.Context) (*types.State, error)
	Save(ctx context.Context, state *types.State) error
}

// SaveObserver is told the duration and result of every completed write.
type SaveObserver func(d time.Duration, err error)

// ObservablePersister is a Persister whose Save may return before the
// write happens. It reports completed writes to the registered observer
// instead.
type ObservablePersister interface {
	Persister
	ObserveSaves(fn SaveObserver)
}

// Adapter is the Persister backed by a Slot.
type Adapter struct {
	slot Slot
}

// NewAdapter creates an adapter over slot.
func NewAdapter(slot Slot) *Adapter {
	return &Adapter{slot: slot}
}

// Load reads and decodes the slot.
func (a *Adapter) Load(ctx context.Context) (*types.State, error) {
	data, err := a.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	state, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("slot %q: %w", a.slot.Name(), err)
	}
	return state, nil
}

// Save encodes state and overwrites the slot.
func (a *Adapter) Save(ctx context.Context, state *types.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := a.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("slot %q: %w", a.slot.Name(), err)
	}
	return nil
}

// Close closes the underlying slot.
func (a *Adapter) Close() error {
	return a.slot.Close()
}

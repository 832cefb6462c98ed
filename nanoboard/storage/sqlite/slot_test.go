package sqlite_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/nanoboard/nanoboard/storage"
	"github.com/arthur-debert/nanoboard/nanoboard/storage/sqlite"
	"github.com/arthur-debert/nanoboard/testutil"
)

func TestSlotInMemory(t *testing.T) {
	slot, err := sqlite.Open(":memory:", "")
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer func() { _ = slot.Close() }()

	if slot.Name() != storage.DefaultSlotName {
		t.Errorf("expected default slot name, got %q", slot.Name())
	}
	if _, err := slot.Load(t.Context()); !errors.Is(err, storage.ErrEmptySlot) {
		t.Fatalf("expected ErrEmptySlot, got %v", err)
	}

	if err := slot.Save(t.Context(), []byte("v1")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := slot.Save(t.Context(), []byte("v2")); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}
	data, err := slot.Load(t.Context())
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("expected v2, got %q", data)
	}
}

func TestSlotPersistsBoardTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.db")

	slot, err := sqlite.Open(path, "board-storage")
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	adapter := storage.NewAdapter(slot)
	if err := slot.Save(t.Context(), testutil.FixtureBytes(t)); err != nil {
		t.Fatalf("failed to save fixture: %v", err)
	}
	if err := adapter.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	reopened, err := sqlite.Open(path, "board-storage")
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	state, err := storage.NewAdapter(reopened).Load(t.Context())
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(state.Boards) != 2 {
		t.Errorf("expected 2 boards, got %d", len(state.Boards))
	}

	t.Run("slots are independent", func(t *testing.T) {
		other, err := sqlite.Open(path, "other")
		if err != nil {
			t.Fatalf("failed to open: %v", err)
		}
		defer func() { _ = other.Close() }()
		if _, err := other.Load(t.Context()); !errors.Is(err, storage.ErrEmptySlot) {
			t.Errorf("expected ErrEmptySlot, got %v", err)
		}
	})
}

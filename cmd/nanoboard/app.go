package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/nanoboard/internal/config"
	"github.com/arthur-debert/nanoboard/nanoboard/metrics"
	"github.com/arthur-debert/nanoboard/nanoboard/storage"
	"github.com/arthur-debert/nanoboard/nanoboard/storage/jsonfile"
	"github.com/arthur-debert/nanoboard/nanoboard/storage/sqlite"
	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/arthur-debert/nanoboard/types"
)

// sqliteFilename is the database created inside storage.path by the sqlite backend.
const sqliteFilename = "nanoboard.db"

// openSlot opens the slot for the configured backend.
func openSlot(cfg config.StorageConfig) (storage.Slot, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemorySlot(cfg.Slot), nil
	case config.BackendFile:
		return jsonfile.New(cfg.Path, cfg.Slot)
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return sqlite.Open(filepath.Join(cfg.Path, sqliteFilename), cfg.Slot)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Store opens the board store on first use.
func (c *CLI) Store() (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	slot, err := openSlot(c.cfg.Storage)
	if err != nil {
		return nil, NewStoreError("open storage", err, "Check storage.backend and storage.path")
	}

	var persister storage.Persister = storage.NewAdapter(slot)
	if d := c.cfg.Storage.Debounce; d > 0 {
		persister = storage.NewDebounced(persister, d, storage.WithFlushErrorHandler(func(err error) {
			c.logger.Error("debounced save failed", "error", err)
		}))
	}

	s, err := store.New(
		store.WithPersister(persister),
		store.WithActor(types.Actor{ID: c.cfg.User.ID, Name: c.cfg.User.Name}),
		store.WithSeed(c.cfg.Seed),
		store.WithLogger(c.logger),
		store.WithMetrics(metrics.New(c.registry)),
	)
	if err != nil {
		_ = slot.Close()
		return nil, NewStoreError("load boards", err,
			"Restore the slot from an export archive (db.json)",
			"Point --data-dir or --slot at another location")
	}
	c.store = s
	return s, nil
}

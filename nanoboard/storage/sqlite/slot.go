// Package sqlite stores slots as rows of a key/value table in a SQLite
// database, mirroring how a browser keeps localStorage entries.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/arthur-debert/nanoboard/nanoboard/storage"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

const slotsSchema = `
CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Slot implements storage.Slot as one row of the slots table.
type Slot struct {
	db       *sql.DB
	name     string
	sq       squirrel.StatementBuilderType
	timeFunc func() time.Time
}

// Open opens (or creates) the database at path and returns the slot `name`.
// Use ":memory:" for a throwaway database.
func Open(path, name string) (*Slot, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	if name == "" {
		name = storage.DefaultSlotName
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: an in-memory database only lives as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Set busy timeout first to help with concurrent access during initialization
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil && !strings.Contains(err.Error(), "database is locked") {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}

	if _, err := db.Exec(slotsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create slots table: %w", err)
	}

	return &Slot{
		db:       db,
		name:     name,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		timeFunc: time.Now,
	}, nil
}

// Name implements storage.Slot.Name
func (s *Slot) Name() string {
	return s.name
}

// Load implements storage.Slot.Load
func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	query, args, err := s.sq.Select("value").From("slots").Where(squirrel.Eq{"key": s.name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrEmptySlot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	return []byte(value), nil
}

// Save implements storage.Slot.Save
func (s *Slot) Save(ctx context.Context, data []byte) error {
	query, args, err := s.sq.Insert("slots").
		Columns("key", "value", "updated_at").
		Values(s.name, string(data), s.timeFunc().UnixMilli()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

// Close implements storage.Slot.Close
func (s *Slot) Close() error {
	return s.db.Close()
}

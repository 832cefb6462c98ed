// Package jsonfile stores a slot as a JSON file on disk.
// Each slot lives in <dir>/<name>.json, guarded by <dir>/<name>.json.lock so
// several processes can share a board directory. Writes go to a temp file
// that is renamed into place.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/nanoboard/nanoboard/storage"
)

// Constants for file locking
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// Slot implements storage.Slot on top of a single JSON file.
type Slot struct {
	name     string
	dir      string
	filePath string
	fs       FileSystem
	lock     Locker
}

// Option configures a Slot.
type Option func(*options)

type options struct {
	fs        FileSystem
	newLocker LockerFunc
}

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithLocker sets a custom lock constructor
func WithLocker(fn LockerFunc) Option {
	return func(o *options) {
		o.newLocker = fn
	}
}

// New creates the slot `name` inside dir. The directory is created on first save.
func New(dir, name string, opts ...Option) (*Slot, error) {
	if dir == "" {
		return nil, errors.New("jsonfile: directory is required")
	}
	if name == "" {
		name = storage.DefaultSlotName
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return nil, fmt.Errorf("jsonfile: invalid slot name %q", name)
	}

	o := options{fs: OSFileSystem{}, newLocker: newFlock}
	for _, opt := range opts {
		opt(&o)
	}

	filePath := filepath.Join(dir, name+".json")
	return &Slot{
		name:     name,
		dir:      dir,
		filePath: filePath,
		fs:       o.fs,
		lock:     o.newLocker(filePath + ".lock"),
	}, nil
}

// Name implements storage.Slot.Name
func (s *Slot) Name() string {
	return s.name
}

// Path returns the path of the slot file.
func (s *Slot) Path() string {
	return s.filePath
}

// Load implements storage.Slot.Load
func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	if _, err := s.fs.Stat(s.filePath); errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrEmptySlot
	}

	var data []byte
	err := s.withLock(ctx, func() error {
		var err error
		data, err = s.fs.ReadFile(s.filePath)
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrEmptySlot
		}
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, storage.ErrEmptySlot
	}
	return data, nil
}

// Save implements storage.Slot.Save
func (s *Slot) Save(ctx context.Context, data []byte) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return s.withLock(ctx, func() error {
		// Write to file atomically (write to temp file, then rename)
		tmpFile := s.filePath + ".tmp"
		if err := s.fs.WriteFile(tmpFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write temp file: %w", err)
		}
		if err := s.fs.Rename(tmpFile, s.filePath); err != nil {
			_ = s.fs.Remove(tmpFile)
			return fmt.Errorf("failed to rename file: %w", err)
		}
		return nil
	})
}

// Close implements storage.Slot.Close
func (s *Slot) Close() error {
	return nil
}

// withLock runs fn while holding the cross-process lock.
func (s *Slot) withLock(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

// acquireLock attempts to acquire an exclusive file lock with retry logic
func (s *Slot) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
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

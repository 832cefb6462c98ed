package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/nanoboard/nanoboard/storage"
	"github.com/arthur-debert/nanoboard/types"
)

type recordingPersister struct {
	mu     sync.Mutex
	saved  []*types.State
	err    error
	closed bool
}

func (r *recordingPersister) Load(ctx context.Context) (*types.State, error) {
	return nil, storage.ErrEmptySlot
}

func (r *recordingPersister) Save(ctx context.Context, state *types.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, state)
	return nil
}

func (r *recordingPersister) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingPersister) snapshot() ([]*types.State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*types.State(nil), r.saved...), r.closed
}

func states(n int) []*types.State {
	out := make([]*types.State, n)
	for i := range out {
		out[i] = &types.State{Boards: []*types.Board{}}
	}
	return out
}

func TestDebounced(t *testing.T) {
	t.Run("zero delay writes through", func(t *testing.T) {
		next := &recordingPersister{}
		d := storage.NewDebounced(next, 0)
		s := states(2)

		for _, st := range s {
			if err := d.Save(t.Context(), st); err != nil {
				t.Fatalf("save failed: %v", err)
			}
		}
		saved, _ := next.snapshot()
		if len(saved) != 2 {
			t.Fatalf("expected 2 writes, got %d", len(saved))
		}
	})

	t.Run("coalesces a burst into the latest state", func(t *testing.T) {
		next := &recordingPersister{}
		d := storage.NewDebounced(next, 20*time.Millisecond)
		s := states(5)

		for _, st := range s {
			_ = d.Save(t.Context(), st)
		}
		if !d.Pending() {
			t.Fatal("expected a pending save")
		}

		var saved []*types.State
		deadline := time.Now().Add(2 * time.Second)
		for len(saved) == 0 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
			saved, _ = next.snapshot()
		}
		time.Sleep(40 * time.Millisecond)
		saved, _ = next.snapshot()
		if len(saved) != 1 {
			t.Fatalf("expected 1 write, got %d", len(saved))
		}
		if saved[0] != s[4] {
			t.Error("expected the last state to be written")
		}
	})

	t.Run("flush writes immediately", func(t *testing.T) {
		next := &recordingPersister{}
		d := storage.NewDebounced(next, time.Hour)
		s := states(1)

		_ = d.Save(t.Context(), s[0])
		if err := d.Flush(t.Context()); err != nil {
			t.Fatalf("flush failed: %v", err)
		}
		saved, _ := next.snapshot()
		if len(saved) != 1 || saved[0] != s[0] {
			t.Fatalf("expected the pending state to be written, got %d writes", len(saved))
		}
		if d.Pending() {
			t.Error("expected nothing pending after flush")
		}
		if err := d.Flush(t.Context()); err != nil {
			t.Errorf("empty flush failed: %v", err)
		}
	})

	t.Run("close flushes and closes the next persister", func(t *testing.T) {
		next := &recordingPersister{}
		d := storage.NewDebounced(next, time.Hour)
		s := states(2)

		_ = d.Save(t.Context(), s[0])
		if err := d.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
		saved, closed := next.snapshot()
		if len(saved) != 1 || !closed {
			t.Fatalf("expected one write and a closed persister, got %d writes closed=%t", len(saved), closed)
		}

		// Saves after close are not deferred.
		_ = d.Save(t.Context(), s[1])
		if saved, _ = next.snapshot(); len(saved) != 2 {
			t.Errorf("expected late save to be written, got %d writes", len(saved))
		}
	})

	t.Run("timer flush errors reach the handler", func(t *testing.T) {
		next := &recordingPersister{err: errors.New("disk full")}
		errs := make(chan error, 1)
		d := storage.NewDebounced(next, time.Millisecond, storage.WithFlushErrorHandler(func(err error) {
			errs <- err
		}))

		_ = d.Save(t.Context(), states(1)[0])
		select {
		case err := <-errs:
			if err == nil || err.Error() != "disk full" {
				t.Errorf("unexpected error %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("flush error was not reported")
		}
	})
}

func TestDebouncedObservesRealWrites(t *testing.T) {
	next := &recordingPersister{}
	d := storage.NewDebounced(next, time.Hour)

	var mu sync.Mutex
	var observed []error
	d.ObserveSaves(func(_ time.Duration, err error) {
		mu.Lock()
		defer mu.Unlock()
		observed = append(observed, err)
	})
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(observed)
	}

	for _, st := range states(3) {
		_ = d.Save(t.Context(), st)
	}
	if got := count(); got != 0 {
		t.Fatalf("deferred saves must not be observed, got %d", got)
	}

	if err := d.Flush(t.Context()); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if got := count(); got != 1 {
		t.Fatalf("expected 1 observed write, got %d", got)
	}

	next.err = errors.New("disk full")
	_ = d.Save(t.Context(), states(1)[0])
	if err := d.Close(); err == nil {
		t.Fatal("expected the flush error from close")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(observed) != 2 || observed[1] == nil {
		t.Errorf("expected the failed write to be observed, got %v", observed)
	}
}

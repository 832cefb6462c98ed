package storage

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/arthur-debert/nanoboard/types"
)

// flushTimeout bounds a background flush triggered by the debounce timer.
const flushTimeout = 5 * time.Second

// Debounced coalesces bursts of saves into one write of the latest state.
// Load passes straight through. Flush and Close write any pending state
// synchronously, so the slot always converges on the last saved tree.
type Debounced struct {
	// wmu serializes writes to next; it is taken before mu.
	wmu     sync.Mutex
	mu      sync.Mutex
	next    Persister
	delay   time.Duration
	pending *types.State
	timer   *time.Timer
	closed  bool
	onError func(error)
	observe SaveObserver
}

// DebounceOption configures a Debounced persister.
type DebounceOption func(*Debounced)

// WithFlushErrorHandler receives errors from timer-driven flushes,
// which have no caller to return them to.
func WithFlushErrorHandler(fn func(error)) DebounceOption {
	return func(d *Debounced) {
		d.onError = fn
	}
}

// NewDebounced wraps next. A delay <= 0 disables batching.
func NewDebounced(next Persister, delay time.Duration, opts ...DebounceOption) *Debounced {
	if delay < 0 {
		delay = 0
	}
	d := &Debounced{
		next:    next,
		delay:   delay,
		onError: func(error) {},
		observe: func(time.Duration, error) {},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ObserveSaves implements ObservablePersister. fn sees the writes to the
// wrapped persister, not the deferred calls to Save.
func (d *Debounced) ObserveSaves(fn SaveObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observe = fn
}

// Load implements Persister.Load
func (d *Debounced) Load(ctx context.Context) (*types.State, error) {
	return d.next.Load(ctx)
}

// Save implements Persister.Save. With batching enabled the write is
// deferred and the returned error is always nil.
func (d *Debounced) Save(ctx context.Context, state *types.State) error {
	d.mu.Lock()
	if d.delay == 0 || d.closed {
		d.mu.Unlock()
		return d.write(ctx, state)
	}
	defer d.mu.Unlock()
	d.pending = state
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.fire)
	} else {
		d.timer.Reset(d.delay)
	}
	return nil
}

func (d *Debounced) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := d.Flush(ctx); err != nil {
		d.onError(err)
	}
}

// Pending reports whether a save is waiting for the timer.
func (d *Debounced) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush writes the pending state, if any.
func (d *Debounced) Flush(ctx context.Context) error {
	d.wmu.Lock()
	defer d.wmu.Unlock()

	d.mu.Lock()
	state := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if state == nil {
		return nil
	}
	return d.save(ctx, state)
}

func (d *Debounced) write(ctx context.Context, state *types.State) error {
	d.wmu.Lock()
	defer d.wmu.Unlock()
	return d.save(ctx, state)
}

// save writes through to next; the caller holds wmu.
func (d *Debounced) save(ctx context.Context, state *types.State) error {
	d.mu.Lock()
	observe := d.observe
	d.mu.Unlock()

	start := time.Now()
	err := d.next.Save(ctx, state)
	observe(time.Since(start), err)
	return err
}

// Close flushes and closes the wrapped persister when it is an io.Closer.
func (d *Debounced) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	err := d.Flush(ctx)

	if c, ok := d.next.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

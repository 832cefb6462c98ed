package store

import (
	"log/slog"
	"time"

	"github.com/arthur-debert/nanoboard/nanoboard/metrics"
	"github.com/arthur-debert/nanoboard/nanoboard/storage"
	"github.com/arthur-debert/nanoboard/types"
)

// Option configures a Store.
type Option func(*Store)

// WithPersister loads the initial state from p and saves to it after
// every applied mutation. Without a persister the store is memory-only.
func WithPersister(p storage.Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithTimeFunc sets a custom time function for deterministic timestamps
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.timeFunc = fn
		}
	}
}

// WithIDFunc sets the id generator used for new entities.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.idFunc = fn
		}
	}
}

// WithActor sets the user recorded on activities and comments.
func WithActor(actor types.Actor) Option {
	return func(s *Store) {
		s.actor = actor
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics reports mutations and persistence to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithSeed starts an empty slot with the default welcome board.
func WithSeed(seed bool) Option {
	return func(s *Store) {
		s.seed = seed
	}
}

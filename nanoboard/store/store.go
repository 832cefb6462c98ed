// Package store is the board state engine: it owns the canonical board
// tree and every query and mutation on it.
//
// The tree is immutable from the outside. Each mutation builds a new tree
// that shares every untouched board, list, card and slice with the previous
// one, so callers can detect changes by pointer comparison. After an
// applied mutation the whole tree is handed to the persister.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/arthur-debert/nanoboard/nanoboard/metrics"
	"github.com/arthur-debert/nanoboard/nanoboard/storage"
	"github.com/arthur-debert/nanoboard/types"
	"github.com/google/uuid"
)

const (
	loadTimeout    = 5 * time.Second
	persistTimeout = 5 * time.Second
)

// DefaultActor is recorded on activities and comments when no actor is configured.
var DefaultActor = types.Actor{ID: "john", Name: types.SeedMember}

// Store is the board state engine.
type Store struct {
	lock  lockManager
	state *types.State

	persister storage.Persister
	// observed is set when the persister reports its own writes.
	observed bool
	timeFunc func() time.Time
	idFunc   func() string
	actor    types.Actor
	logger   *slog.Logger
	metrics  *metrics.Metrics
	seed     bool

	subMu       sync.Mutex
	subs        []subscription
	nextSubID   int
	queue       []Change
	dispatching bool
}

// New creates a store and loads its state from the configured persister.
// An empty slot yields an empty store, or the welcome board with WithSeed.
func New(opts ...Option) (*Store, error) {
	s := &Store{
		timeFunc: time.Now,
		idFunc:   uuid.NewString,
		actor:    DefaultActor,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store")
	if p, ok := s.persister.(storage.ObservablePersister); ok {
		p.ObserveSaves(s.metrics.Persisted)
		s.observed = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.state = state
	s.metrics.SetBoards(len(state.Boards))
	return s, nil
}

func (s *Store) load(ctx context.Context) (*types.State, error) {
	if s.persister != nil {
		state, err := s.persister.Load(ctx)
		switch {
		case err == nil:
			s.logger.Debug("loaded board state", "boards", len(state.Boards))
			return state, nil
		case !errors.Is(err, storage.ErrEmptySlot):
			return nil, fmt.Errorf("failed to load board state: %w", err)
		}
	}
	if s.seed {
		return types.DefaultState(), nil
	}
	return &types.State{Boards: []*types.Board{}}, nil
}

// Actor returns the user recorded on activities and comments.
func (s *Store) Actor() types.Actor {
	return s.actor
}

// Close writes any pending state and closes the persister.
func (s *Store) Close() error {
	if s.persister == nil {
		return nil
	}
	if c, ok := s.persister.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// mutate runs fn against the current tree under the write lock. fn
// returns the replacement tree when it applied a change; any other
// outcome leaves the current tree untouched.
func (s *Store) mutate(op string, fn func(st *types.State) (*types.State, Result)) Result {
	var (
		res        Result
		prev, next *types.State
	)
	s.lock.execute(writeOperation, func() {
		prev = s.state
		next, res = fn(prev)
		if res.Outcome != Applied || next == nil {
			if res.Outcome == Applied {
				res = corrupted("operation produced no state")
			}
			return
		}
		s.state = next
		s.persist(next)
		s.metrics.SetBoards(len(next.Boards))
		res.Op = op
		s.enqueue(Change{Prev: prev, Next: next, Result: res})
	})
	res.Op = op
	s.record(res)

	if res.Outcome == Applied {
		s.dispatch()
	}
	return res
}

// persist saves the tree. Failures are best effort: logged and counted.
func (s *Store) persist(state *types.State) {
	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	start := time.Now()
	err := s.persister.Save(ctx, state)
	if !s.observed {
		s.metrics.Persisted(time.Since(start), err)
	}
	if err != nil {
		s.logger.Error("failed to persist board state", "error", err)
	}
}

func (s *Store) record(res Result) {
	s.metrics.Mutation(res.Op, res.Outcome.String())
	switch res.Outcome {
	case Applied:
		s.logger.Debug("mutation applied", "op", res.Op, "id", res.ID)
	case Corrupted:
		s.logger.Error("mutation aborted on corrupted state", "op", res.Op, "reason", res.Reason)
	default:
		s.logger.Debug("mutation skipped", "op", res.Op, "outcome", res.Outcome.String(), "reason", res.Reason)
	}
}

func (s *Store) now() types.Timestamp {
	return types.NewTimestamp(s.timeFunc())
}

func (s *Store) newActivity(kind types.ActivityType, data types.ActivityData) types.Activity {
	return types.Activity{
		ID:        s.idFunc(),
		Type:      kind,
		Data:      data,
		CreatedAt: s.now(),
		UserID:    s.actor.ID,
		UserName:  s.actor.Name,
	}
}

// Package testutil provides a loaded board fixture and deterministic
// clocks and id generators for engine tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/nanoboard/nanoboard/storage"
	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/arthur-debert/nanoboard/types"
)

// Fixture ids from testdata/project.json.
const (
	BoardP       = "board-p"
	BoardArchive = "board-archive"

	ListTodo  = "list-todo"
	ListDoing = "list-doing"
	ListDone  = "list-done"

	CardA = "card-a"
	CardB = "card-b"
	CardC = "card-c"
	CardD = "card-d"

	CommentC1 = "comment-c-1"
)

// Epoch is the first instant handed out by NewClock.
var Epoch = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// Project gives typed access to the loaded fixture.
//
// Board P is starred and holds Todo [A, B, C], an empty Doing and
// Done [D]. Board Archive is closed and empty.
type Project struct {
	Store *store.Store
	Slot  *storage.MemorySlot
	Clock *Clock
	IDs   *SequentialIDs
}

// Board returns the current version of board P.
func (p *Project) Board(t *testing.T) *types.Board {
	t.Helper()
	board, ok := p.Store.GetBoard(BoardP)
	if !ok {
		t.Fatalf("fixture board %q missing", BoardP)
	}
	return board
}

// List returns the current version of a list of board P.
func (p *Project) List(t *testing.T, listID string) *types.List {
	t.Helper()
	list, ok := p.Store.FindList(BoardP, listID)
	if !ok {
		t.Fatalf("fixture list %q missing", listID)
	}
	return list
}

// Card returns the current version of a card of board P.
func (p *Project) Card(t *testing.T, listID, cardID string) *types.Card {
	t.Helper()
	card, ok := p.Store.FindCard(BoardP, listID, cardID)
	if !ok {
		t.Fatalf("card %q not in list %q", cardID, listID)
	}
	return card
}

// FixtureBytes returns the raw fixture document.
func FixtureBytes(t *testing.T) []byte {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate testutil sources")
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(file), "testdata", "project.json"))
	if err != nil {
		t.Fatalf("failed to read fixture file: %v", err)
	}
	return data
}

// LoadProject returns a store loaded from the fixture through an
// in-memory slot, with a deterministic clock and id generator. Extra
// options are applied after the fixture ones.
func LoadProject(t *testing.T, opts ...store.Option) *Project {
	t.Helper()

	slot := storage.NewMemorySlot(storage.DefaultSlotName)
	if err := slot.Save(t.Context(), FixtureBytes(t)); err != nil {
		t.Fatalf("failed to seed slot: %v", err)
	}
	slot.Saves = 0

	p := &Project{
		Slot:  slot,
		Clock: NewClock(Epoch, time.Second),
		IDs:   NewSequentialIDs("id"),
	}
	base := []store.Option{
		store.WithPersister(storage.NewAdapter(slot)),
		store.WithTimeFunc(p.Clock.Now),
		store.WithIDFunc(p.IDs.Next),
	}
	s, err := store.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	p.Store = s
	return p
}

// NewMemoryStore returns an empty store persisting to a fresh memory slot.
func NewMemoryStore(t *testing.T, opts ...store.Option) (*store.Store, *storage.MemorySlot) {
	t.Helper()
	slot := storage.NewMemorySlot(storage.DefaultSlotName)
	base := []store.Option{
		store.WithPersister(storage.NewAdapter(slot)),
		store.WithTimeFunc(NewClock(Epoch, time.Second).Now),
		store.WithIDFunc(NewSequentialIDs("id").Next),
	}
	s, err := store.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, slot
}

// Clock is a fake time source that advances by a fixed step on every read.
type Clock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewClock returns a clock whose first reading is start.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{next: start, step: step}
}

// Now returns the current fake time and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

// Peek returns the time the next call to Now will report.
func (c *Clock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

// SequentialIDs hands out prefix-1, prefix-2, ...
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs returns a generator using prefix.
func NewSequentialIDs(prefix string) *SequentialIDs {
	return &SequentialIDs{prefix: prefix}
}

// Next returns the next id.
func (g *SequentialIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

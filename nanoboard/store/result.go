package store

import (
	"errors"
	"fmt"
)

// Outcome classifies what a mutation did.
type Outcome int

const (
	// Applied means the state changed and was persisted.
	Applied Outcome = iota
	// NoChange means the input was valid but the state already matched it.
	NoChange
	// NotFound means a referenced board, list, card or comment does not exist.
	NotFound
	// InvalidRange means an index was outside the valid bounds.
	InvalidRange
	// Corrupted means the stored tree was inconsistent and the operation was aborted.
	Corrupted
)

var outcomeNames = map[Outcome]string{
	Applied:      "applied",
	NoChange:     "no_change",
	NotFound:     "not_found",
	InvalidRange: "invalid_range",
	Corrupted:    "corrupted",
}

// String returns the snake_case name of the outcome.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Sentinel errors returned by Result.Err.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidRange = errors.New("index out of range")
	ErrCorrupted    = errors.New("board state is corrupted")
)

// Result reports the outcome of a mutation. Mutations never panic or
// return errors; inspect the Result (or call Err) to tell a rejected
// input from a successful change.
type Result struct {
	Op      string  `json:"op"`
	Outcome Outcome `json:"outcome"`
	// ID is the id of the created entity for add operations.
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Applied reports whether the state changed.
func (r Result) Applied() bool {
	return r.Outcome == Applied
}

// Err returns nil for Applied and NoChange, otherwise an error wrapping
// ErrNotFound, ErrInvalidRange or ErrCorrupted.
func (r Result) Err() error {
	var base error
	switch r.Outcome {
	case Applied, NoChange:
		return nil
	case NotFound:
		base = ErrNotFound
	case InvalidRange:
		base = ErrInvalidRange
	case Corrupted:
		base = ErrCorrupted
	default:
		return fmt.Errorf("%s: unknown outcome %d", r.Op, int(r.Outcome))
	}
	if r.Reason == "" {
		return fmt.Errorf("%s: %w", r.Op, base)
	}
	return fmt.Errorf("%s: %s: %w", r.Op, r.Reason, base)
}

func applied(id string) Result {
	return Result{Outcome: Applied, ID: id}
}

func noChange(format string, args ...any) Result {
	return Result{Outcome: NoChange, Reason: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) Result {
	return Result{Outcome: NotFound, Reason: fmt.Sprintf(format, args...)}
}

func invalidRange(format string, args ...any) Result {
	return Result{Outcome: InvalidRange, Reason: fmt.Sprintf(format, args...)}
}

func corrupted(format string, args ...any) Result {
	return Result{Outcome: Corrupted, Reason: fmt.Sprintf(format, args...)}
}

// Operation names reported in Result.Op, logs and metrics.
const (
	OpAddBoard              = "addBoard"
	OpRemoveBoard           = "removeBoard"
	OpCloseBoard            = "closeBoard"
	OpReopenBoard           = "reopenBoard"
	OpToggleStar            = "toggleStar"
	OpAddList               = "addList"
	OpRemoveList            = "removeList"
	OpUpdateListTitle       = "updateListTitle"
	OpUpdateListBackground  = "updateListBackground"
	OpMoveList              = "moveList"
	OpAddCard               = "addCard"
	OpRemoveCard            = "removeCard"
	OpUpdateCardTitle       = "updateCardTitle"
	OpToggleCardComplete    = "toggleCardComplete"
	OpToggleCardWatching    = "toggleCardWatching"
	OpUpdateCardDescription = "updateCardDescription"
	OpMoveCard              = "moveCard"
	OpAddComment            = "addComment"
	OpUpdateComment         = "updateComment"
	OpDeleteComment         = "deleteComment"
)

package store

import (
	"slices"

	"github.com/arthur-debert/nanoboard/types"
)

// AddBoard appends a new open board with no lists. The acting user
// becomes its only member. The title is stored as given.
func (s *Store) AddBoard(title, background string) Result {
	return s.mutate(OpAddBoard, func(st *types.State) (*types.State, Result) {
		board := &types.Board{
			ID:         s.idFunc(),
			Title:      title,
			Background: background,
			Lists:      []*types.List{},
			Members:    []string{s.actor.Name},
		}
		boards := append(slices.Clip(st.Boards), board)
		return &types.State{Boards: boards}, applied(board.ID)
	})
}

// RemoveBoard permanently deletes a board and everything it contains.
func (s *Store) RemoveBoard(boardID string) Result {
	return s.mutate(OpRemoveBoard, func(st *types.State) (*types.State, Result) {
		i := st.BoardIndex(boardID)
		if i < 0 {
			return nil, notFound("board %q", boardID)
		}
		boards := slices.Delete(slices.Clone(st.Boards), i, i+1)
		return &types.State{Boards: boards}, applied(boardID)
	})
}

// CloseBoard soft-deletes a board. Closed boards stay in the store and
// can be reopened.
func (s *Store) CloseBoard(boardID string) Result {
	return s.setClosed(OpCloseBoard, boardID, true)
}

// ReopenBoard clears the closed flag of a board.
func (s *Store) ReopenBoard(boardID string) Result {
	return s.setClosed(OpReopenBoard, boardID, false)
}

func (s *Store) setClosed(op, boardID string, closed bool) Result {
	return s.editBoard(op, boardID, func(b *types.Board) Result {
		if b.IsClosed == closed {
			return noChange("board %q already has closed=%t", boardID, closed)
		}
		b.IsClosed = closed
		return applied(boardID)
	})
}

// ToggleStar flips the starred flag of a board.
func (s *Store) ToggleStar(boardID string) Result {
	return s.editBoard(OpToggleStar, boardID, func(b *types.Board) Result {
		b.IsStarred = !b.IsStarred
		return applied(boardID)
	})
}

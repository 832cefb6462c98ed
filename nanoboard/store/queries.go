package store

import "github.com/arthur-debert/nanoboard/types"

// Snapshot returns the current tree. The tree is shared and must be
// treated as read-only; later mutations never modify it.
func (s *Store) Snapshot() *types.State {
	var st *types.State
	s.lock.execute(readOperation, func() {
		st = s.state
	})
	return st
}

// Boards returns every board, closed ones included, in store order.
func (s *Store) Boards() []*types.Board {
	return s.Snapshot().Boards
}

// GetBoard returns the board with the given id.
func (s *Store) GetBoard(id string) (*types.Board, bool) {
	return s.Snapshot().FindBoard(id)
}

// OpenBoards returns the boards that are not closed.
func (s *Store) OpenBoards() []*types.Board {
	return s.filterBoards(func(b *types.Board) bool { return !b.IsClosed })
}

// StarredBoards returns the open boards marked with a star.
func (s *Store) StarredBoards() []*types.Board {
	return s.filterBoards(func(b *types.Board) bool { return b.IsStarred && !b.IsClosed })
}

// ClosedBoards returns the boards that were closed and can be reopened.
func (s *Store) ClosedBoards() []*types.Board {
	return s.filterBoards(func(b *types.Board) bool { return b.IsClosed })
}

func (s *Store) filterBoards(keep func(*types.Board) bool) []*types.Board {
	var out []*types.Board
	for _, b := range s.Boards() {
		if b != nil && keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// FindList returns a list of a board.
func (s *Store) FindList(boardID, listID string) (*types.List, bool) {
	board, ok := s.GetBoard(boardID)
	if !ok {
		return nil, false
	}
	return board.FindList(listID)
}

// FindCard returns a card of a list.
func (s *Store) FindCard(boardID, listID, cardID string) (*types.Card, bool) {
	list, ok := s.FindList(boardID, listID)
	if !ok {
		return nil, false
	}
	return list.FindCard(cardID)
}

// LocateCard finds which list of a board holds a card, and where.
func (s *Store) LocateCard(boardID, cardID string) (listID string, index int, ok bool) {
	board, found := s.GetBoard(boardID)
	if !found {
		return "", -1, false
	}
	for _, list := range board.Lists {
		if list == nil {
			continue
		}
		if i := list.CardIndex(cardID); i >= 0 {
			return list.ID, i, true
		}
	}
	return "", -1, false
}

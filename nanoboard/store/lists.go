package store

import (
	"slices"

	"github.com/arthur-debert/nanoboard/types"
)

// AddList appends an empty list to a board.
func (s *Store) AddList(boardID, title string) Result {
	return s.editBoard(OpAddList, boardID, func(b *types.Board) Result {
		id := s.idFunc()
		list := &types.List{ID: id, Title: title, Cards: []*types.Card{}}
		b.Lists = append(slices.Clip(b.Lists), list)
		return applied(id)
	})
}

// RemoveList deletes a list and its cards.
func (s *Store) RemoveList(boardID, listID string) Result {
	return s.editBoard(OpRemoveList, boardID, func(b *types.Board) Result {
		i := b.ListIndex(listID)
		if i < 0 {
			return notFound("list %q on board %q", listID, boardID)
		}
		b.Lists = slices.Delete(slices.Clone(b.Lists), i, i+1)
		return applied(listID)
	})
}

// UpdateListTitle renames a list.
func (s *Store) UpdateListTitle(boardID, listID, title string) Result {
	return s.editList(OpUpdateListTitle, boardID, listID, func(l *types.List) Result {
		if l.Title == title {
			return noChange("list %q already titled %q", listID, title)
		}
		l.Title = title
		return applied(listID)
	})
}

// UpdateListBackground sets the background of a list. Passing
// types.NoBackground (or "") restores the default.
func (s *Store) UpdateListBackground(boardID, listID, background string) Result {
	if background == types.NoBackground {
		background = ""
	}
	return s.editList(OpUpdateListBackground, boardID, listID, func(l *types.List) Result {
		if l.Background == background {
			return noChange("list %q background unchanged", listID)
		}
		l.Background = background
		return applied(listID)
	})
}

// MoveList relocates the list at fromIndex so that it ends up at toIndex.
// Both indices must address an existing list.
func (s *Store) MoveList(boardID string, fromIndex, toIndex int) Result {
	return s.editBoard(OpMoveList, boardID, func(b *types.Board) Result {
		n := len(b.Lists)
		if fromIndex < 0 || fromIndex >= n {
			return invalidRange("fromIndex %d outside [0,%d)", fromIndex, n)
		}
		if toIndex < 0 || toIndex >= n {
			return invalidRange("toIndex %d outside [0,%d)", toIndex, n)
		}
		if fromIndex == toIndex {
			return noChange("list already at index %d", toIndex)
		}
		moved := b.Lists[fromIndex]
		if moved == nil || moved.ID == "" {
			return corrupted("list at index %d on board %q has no id", fromIndex, boardID)
		}
		lists := slices.Delete(slices.Clone(b.Lists), fromIndex, fromIndex+1)
		b.Lists = slices.Insert(lists, toIndex, moved)
		return applied(moved.ID)
	})
}

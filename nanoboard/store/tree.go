package store

import (
	"slices"

	"github.com/arthur-debert/nanoboard/types"
)

// The helpers below rebuild the path from the root to a changed node.
// Each one copies exactly one level and reuses every sibling pointer,
// which is what lets callers spot changes with pointer equality.

// boardEdit receives a shallow copy of a board. Returning a non-Applied
// result discards the copy.
type boardEdit func(b *types.Board) Result

type listEdit func(l *types.List) Result

type cardEdit func(c *types.Card) Result

func withBoard(st *types.State, i int, b *types.Board) *types.State {
	boards := slices.Clone(st.Boards)
	boards[i] = b
	return &types.State{Boards: boards}
}

func withList(b *types.Board, i int, l *types.List) {
	b.Lists = slices.Clone(b.Lists)
	b.Lists[i] = l
}

func withCard(l *types.List, i int, c *types.Card) {
	l.Cards = slices.Clone(l.Cards)
	l.Cards[i] = c
}

// appendActivity appends to a card's log without touching the backing
// array of earlier snapshots.
func appendActivity(c *types.Card, a types.Activity) {
	c.Activities = append(slices.Clip(c.Activities), a)
}

func (s *Store) editBoard(op, boardID string, edit boardEdit) Result {
	return s.mutate(op, func(st *types.State) (*types.State, Result) {
		i := st.BoardIndex(boardID)
		if i < 0 {
			return nil, notFound("board %q", boardID)
		}
		board := *st.Boards[i]
		res := edit(&board)
		if res.Outcome != Applied {
			return nil, res
		}
		return withBoard(st, i, &board), res
	})
}

func (s *Store) editList(op, boardID, listID string, edit listEdit) Result {
	return s.editBoard(op, boardID, func(b *types.Board) Result {
		i := b.ListIndex(listID)
		if i < 0 {
			return notFound("list %q on board %q", listID, boardID)
		}
		list := *b.Lists[i]
		res := edit(&list)
		if res.Outcome == Applied {
			withList(b, i, &list)
		}
		return res
	})
}

func (s *Store) editCard(op, boardID, listID, cardID string, edit cardEdit) Result {
	return s.editList(op, boardID, listID, func(l *types.List) Result {
		i := l.CardIndex(cardID)
		if i < 0 {
			return notFound("card %q in list %q", cardID, listID)
		}
		card := *l.Cards[i]
		res := edit(&card)
		if res.Outcome == Applied {
			withCard(l, i, &card)
		}
		return res
	})
}

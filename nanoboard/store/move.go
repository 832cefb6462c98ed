package store

import (
	"fmt"
	"slices"

	"github.com/arthur-debert/nanoboard/types"
)

// MoveCard relocates the card at fromIndex of one list to toIndex of
// another list, or of the same list.
//
// The card is removed before it is inserted. For a same-list move toIndex
// therefore addresses the list without the card, so its valid range is
// [0, len-1]. For a cross-list move it is an insertion point in
// [0, len(to)], where len(to) appends. A move logs an activity naming
// the lists, or the 1-based positions when the list does not change.
func (s *Store) MoveCard(boardID, fromListID string, fromIndex int, toListID string, toIndex int) Result {
	return s.editBoard(OpMoveCard, boardID, func(b *types.Board) Result {
		fi := b.ListIndex(fromListID)
		if fi < 0 {
			return notFound("list %q on board %q", fromListID, boardID)
		}
		ti := b.ListIndex(toListID)
		if ti < 0 {
			return notFound("list %q on board %q", toListID, boardID)
		}
		from, to := b.Lists[fi], b.Lists[ti]
		sameList := fi == ti

		if fromIndex < 0 || fromIndex >= len(from.Cards) {
			return invalidRange("fromIndex %d outside [0,%d)", fromIndex, len(from.Cards))
		}
		maxTo := len(to.Cards)
		if sameList {
			maxTo = len(from.Cards) - 1
		}
		if toIndex < 0 || toIndex > maxTo {
			return invalidRange("toIndex %d outside [0,%d]", toIndex, maxTo)
		}
		if sameList && fromIndex == toIndex {
			return noChange("card already at index %d", toIndex)
		}

		source := slices.Clone(from.Cards)
		moved := source[fromIndex]
		source = slices.Delete(source, fromIndex, fromIndex+1)
		if !moved.Valid() {
			return corrupted("card at index %d of list %q is malformed", fromIndex, fromListID)
		}

		card := *moved
		data := types.ActivityData{From: from.Title, To: to.Title}
		if sameList {
			data = types.ActivityData{
				From: fmt.Sprintf("position %d", fromIndex+1),
				To:   fmt.Sprintf("position %d", toIndex+1),
			}
		}
		appendActivity(&card, s.newActivity(types.ActivityMove, data))

		newFrom := *from
		if sameList {
			newFrom.Cards = slices.Insert(source, toIndex, &card)
			withList(b, fi, &newFrom)
			return applied(card.ID)
		}
		newFrom.Cards = source
		newTo := *to
		newTo.Cards = slices.Insert(slices.Clone(to.Cards), toIndex, &card)

		b.Lists = slices.Clone(b.Lists)
		b.Lists[fi] = &newFrom
		b.Lists[ti] = &newTo
		return applied(card.ID)
	})
}

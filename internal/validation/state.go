package validation

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/nanoboard/types"
)

// ValidateState checks the referential invariants of a board tree:
//   - board ids are unique across the store
//   - list ids are unique within a board
//   - card ids are unique within a board (a card lives in exactly one list)
//   - activity and comment ids are unique within their card
//   - no entity is nil or missing its id
//
// All violations are reported, joined into a single error.
func ValidateState(state *types.State) error {
	if state == nil {
		return errors.New("state is nil")
	}

	var errs []error
	boardIDs := make(map[string]bool)
	for bi, board := range state.Boards {
		if board == nil {
			errs = append(errs, fmt.Errorf("board #%d is nil", bi))
			continue
		}
		if board.ID == "" {
			errs = append(errs, fmt.Errorf("board #%d has no id", bi))
		} else if boardIDs[board.ID] {
			errs = append(errs, fmt.Errorf("duplicate board id %q", board.ID))
		}
		boardIDs[board.ID] = true
		errs = append(errs, validateBoard(board)...)
	}
	return errors.Join(errs...)
}

func validateBoard(board *types.Board) []error {
	var errs []error
	listIDs := make(map[string]bool)
	cardIDs := make(map[string]string)
	for li, list := range board.Lists {
		if list == nil {
			errs = append(errs, fmt.Errorf("board %q: list #%d is nil", board.ID, li))
			continue
		}
		if list.ID == "" {
			errs = append(errs, fmt.Errorf("board %q: list #%d has no id", board.ID, li))
		} else if listIDs[list.ID] {
			errs = append(errs, fmt.Errorf("board %q: duplicate list id %q", board.ID, list.ID))
		}
		listIDs[list.ID] = true

		for ci, card := range list.Cards {
			if !card.Valid() {
				errs = append(errs, fmt.Errorf("board %q list %q: card #%d is malformed", board.ID, list.ID, ci))
				continue
			}
			if owner, seen := cardIDs[card.ID]; seen {
				errs = append(errs, fmt.Errorf("board %q: card %q appears in lists %q and %q", board.ID, card.ID, owner, list.ID))
			}
			cardIDs[card.ID] = list.ID
			errs = append(errs, validateCard(card)...)
		}
	}
	return errs
}

func validateCard(card *types.Card) []error {
	var errs []error
	activityIDs := make(map[string]bool)
	for _, a := range card.Activities {
		if a.ID == "" || activityIDs[a.ID] {
			errs = append(errs, fmt.Errorf("card %q: missing or duplicate activity id %q", card.ID, a.ID))
		}
		if !a.Type.Valid() {
			errs = append(errs, fmt.Errorf("card %q: unknown activity type %q", card.ID, a.Type))
		}
		activityIDs[a.ID] = true
	}
	commentIDs := make(map[string]bool)
	for _, c := range card.Comments {
		if c.ID == "" || commentIDs[c.ID] {
			errs = append(errs, fmt.Errorf("card %q: missing or duplicate comment id %q", card.ID, c.ID))
		}
		commentIDs[c.ID] = true
	}
	return errs
}

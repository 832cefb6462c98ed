package main

import (
	"strings"

	"github.com/arthur-debert/nanoboard/internal/matching"
	"github.com/arthur-debert/nanoboard/types"
)

var (
	boardMatcher = matching.Matcher[*types.Board]{
		ID:    func(b *types.Board) string { return b.ID },
		Title: func(b *types.Board) string { return b.Title },
	}
	listMatcher = matching.Matcher[*types.List]{
		ID:    func(l *types.List) string { return l.ID },
		Title: func(l *types.List) string { return l.Title },
	}
	cardMatcher = matching.Matcher[cardRef]{
		ID:    func(r cardRef) string { return r.card.ID },
		Title: func(r cardRef) string { return r.card.Title },
	}
)

// single turns matches into exactly one item or a not-found/ambiguous error.
func single[T any](m matching.Matcher[T], operation, resource, ref string, found []T) (T, error) {
	var zero T
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return zero, NewNotFoundError(operation, resource, ref)
	default:
		return zero, NewAmbiguousError(operation, resource, ref, m.IDs(found))
	}
}

// resolveBoard finds a board by id or unique title.
func resolveBoard(boards []*types.Board, ref, operation string) (*types.Board, error) {
	return single(boardMatcher, operation, "board", ref, boardMatcher.Find(boards, ref))
}

// resolveList finds a list of board by id or unique title.
func resolveList(board *types.Board, ref, operation string) (*types.List, error) {
	return single(listMatcher, operation, "list", ref, listMatcher.Find(board.Lists, ref))
}

// cardRef is a card together with the list holding it.
type cardRef struct {
	list  *types.List
	card  *types.Card
	index int
}

// resolveCard finds a card anywhere on board by id or unique title.
func resolveCard(board *types.Board, ref, operation string) (cardRef, error) {
	var all []cardRef
	for _, list := range board.Lists {
		if list == nil {
			continue
		}
		for i, card := range list.Cards {
			if card != nil {
				all = append(all, cardRef{list: list, card: card, index: i})
			}
		}
	}
	return single(cardMatcher, operation, "card", ref, cardMatcher.Find(all, ref))
}

// joinText joins positional words into one trimmed string.
func joinText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// requireText rejects blank titles and comments before they reach the store.
func requireText(operation, field string, args []string) (string, error) {
	text := joinText(args)
	if text == "" {
		return "", NewValidationError(operation, field, text, "Provide a non-empty "+field)
	}
	return text, nil
}

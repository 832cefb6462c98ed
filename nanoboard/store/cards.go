package store

import (
	"slices"
	"strconv"

	"github.com/arthur-debert/nanoboard/types"
)

// AddCard appends a new card to a list and logs an add activity naming
// the list.
func (s *Store) AddCard(boardID, listID, title string) Result {
	return s.editList(OpAddCard, boardID, listID, func(l *types.List) Result {
		card := &types.Card{
			ID:         s.idFunc(),
			Title:      title,
			CreatedAt:  s.now(),
			Activities: []types.Activity{},
			Comments:   []types.Comment{},
		}
		appendActivity(card, s.newActivity(types.ActivityAdd, types.ActivityData{To: l.Title}))
		l.Cards = append(slices.Clip(l.Cards), card)
		return applied(card.ID)
	})
}

// RemoveCard deletes a card from a list.
func (s *Store) RemoveCard(boardID, listID, cardID string) Result {
	return s.editList(OpRemoveCard, boardID, listID, func(l *types.List) Result {
		i := l.CardIndex(cardID)
		if i < 0 {
			return notFound("card %q in list %q", cardID, listID)
		}
		l.Cards = slices.Delete(slices.Clone(l.Cards), i, i+1)
		return applied(cardID)
	})
}

// UpdateCardTitle renames a card. No activity is logged for title
// changes even though the title activity type exists.
func (s *Store) UpdateCardTitle(boardID, listID, cardID, title string) Result {
	return s.editCard(OpUpdateCardTitle, boardID, listID, cardID, func(c *types.Card) Result {
		if c.Title == title {
			return noChange("card %q already titled %q", cardID, title)
		}
		c.Title = title
		return applied(cardID)
	})
}

// ToggleCardComplete flips the completed flag and logs the new value.
func (s *Store) ToggleCardComplete(boardID, listID, cardID string) Result {
	return s.editCard(OpToggleCardComplete, boardID, listID, cardID, func(c *types.Card) Result {
		c.IsCompleted = !c.IsCompleted
		appendActivity(c, s.newActivity(types.ActivityComplete, types.ActivityData{
			Value: strconv.FormatBool(c.IsCompleted),
		}))
		return applied(cardID)
	})
}

// ToggleCardWatching flips the watching flag.
func (s *Store) ToggleCardWatching(boardID, listID, cardID string) Result {
	return s.editCard(OpToggleCardWatching, boardID, listID, cardID, func(c *types.Card) Result {
		c.IsWatching = !c.IsWatching
		return applied(cardID)
	})
}

// UpdateCardDescription sets the description and logs a description
// activity carrying it. An empty description clears the field.
func (s *Store) UpdateCardDescription(boardID, listID, cardID, description string) Result {
	return s.editCard(OpUpdateCardDescription, boardID, listID, cardID, func(c *types.Card) Result {
		if description == "" {
			c.Description = nil
		} else {
			c.Description = &description
		}
		appendActivity(c, s.newActivity(types.ActivityDescription, types.ActivityData{Value: description}))
		return applied(cardID)
	})
}

package store

import (
	"slices"

	"github.com/arthur-debert/nanoboard/types"
)

// AddComment appends a comment authored by the acting user. Content is
// stored as given; callers reject blank comments.
func (s *Store) AddComment(boardID, listID, cardID, content string) Result {
	return s.editCard(OpAddComment, boardID, listID, cardID, func(c *types.Card) Result {
		comment := types.Comment{
			ID:        s.idFunc(),
			Content:   content,
			UserID:    s.actor.ID,
			UserName:  s.actor.Name,
			CreatedAt: s.now(),
		}
		c.Comments = append(slices.Clip(c.Comments), comment)
		return applied(comment.ID)
	})
}

// UpdateComment replaces the content of a comment and stamps updatedAt.
func (s *Store) UpdateComment(boardID, listID, cardID, commentID, content string) Result {
	return s.editCard(OpUpdateComment, boardID, listID, cardID, func(c *types.Card) Result {
		i := c.CommentIndex(commentID)
		if i < 0 {
			return notFound("comment %q on card %q", commentID, cardID)
		}
		updated := s.now()
		c.Comments = slices.Clone(c.Comments)
		c.Comments[i].Content = content
		c.Comments[i].UpdatedAt = &updated
		return applied(commentID)
	})
}

// DeleteComment removes a comment from a card.
func (s *Store) DeleteComment(boardID, listID, cardID, commentID string) Result {
	return s.editCard(OpDeleteComment, boardID, listID, cardID, func(c *types.Card) Result {
		i := c.CommentIndex(commentID)
		if i < 0 {
			return notFound("comment %q on card %q", commentID, cardID)
		}
		c.Comments = slices.Delete(slices.Clone(c.Comments), i, i+1)
		return applied(commentID)
	})
}

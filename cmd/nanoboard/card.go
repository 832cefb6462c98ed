package main

import (
	"io"

	"github.com/arthur-debert/nanoboard/nanoboard/export"
	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/arthur-debert/nanoboard/types"
	"github.com/spf13/cobra"
)

func (c *CLI) cardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	add := &cobra.Command{
		Use:   "add <board> <list> <title>",
		Short: "Append a card to a list",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := requireText("add card", "title", args[2:])
			if err != nil {
				return err
			}
			board, list, err := c.list(args[0], args[1], "add card")
			if err != nil {
				return err
			}
			return c.report("add card", c.store.AddCard(board.ID, list.ID, title))
		},
	}

	show := &cobra.Command{
		Use:   "show <board> <card>",
		Short: "Show a card with its comments and activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ref, err := c.card(args[0], args[1], "show card")
			if err != nil {
				return err
			}
			return c.render(ref.card, func(w io.Writer) error {
				_, err := io.WriteString(w, export.RenderCard(ref.card, ref.list.Title))
				return err
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename <board> <card> <title>",
		Short: "Rename a card",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := requireText("rename card", "title", args[2:])
			if err != nil {
				return err
			}
			board, ref, err := c.card(args[0], args[1], "rename card")
			if err != nil {
				return err
			}
			return c.report("rename card", c.store.UpdateCardTitle(board.ID, ref.list.ID, ref.card.ID, title))
		},
	}

	describe := &cobra.Command{
		Use:   "describe <board> <card> [description]",
		Short: "Set a card description; omit it to remove the description",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, ref, err := c.card(args[0], args[1], "describe card")
			if err != nil {
				return err
			}
			res := c.store.UpdateCardDescription(board.ID, ref.list.ID, ref.card.ID, joinText(args[2:]))
			return c.report("describe card", res)
		},
	}

	var toList string
	var position int
	mv := &cobra.Command{
		Use:   "mv <board> <card>",
		Short: "Move a card within its list or to another list",
		Long: `Move a card within its list or to another list.

Without --position the card goes to the end of the target list.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, ref, err := c.card(args[0], args[1], "move card")
			if err != nil {
				return err
			}
			target := ref.list
			if toList != "" {
				if target, err = resolveList(board, toList, "move card"); err != nil {
					return err
				}
			}
			res := c.store.MoveCard(board.ID, ref.list.ID, ref.index, target.ID, targetIndex(ref.list, target, position))
			return c.report("move card", res)
		},
	}
	mv.Flags().StringVar(&toList, "to", "", "target list (default: the card's list)")
	mv.Flags().IntVar(&position, "position", 0, "1-based position in the target list (default: last)")

	cmd.AddCommand(
		add,
		show,
		rename,
		describe,
		mv,
		c.cardAction("rm", "Delete a card", "remove card", (*store.Store).RemoveCard),
		c.cardAction("done", "Toggle a card between complete and incomplete", "complete card", (*store.Store).ToggleCardComplete),
		c.cardAction("watch", "Toggle watching a card", "watch card", (*store.Store).ToggleCardWatching),
	)
	return cmd
}

// targetIndex converts a 1-based position to the index MoveCard expects.
// Zero means the end of the target list.
func targetIndex(from, to *types.List, position int) int {
	if position != 0 {
		return position - 1
	}
	if from.ID == to.ID {
		return len(to.Cards) - 1
	}
	return len(to.Cards)
}

func (c *CLI) cardAction(use, short, operation string, op func(s *store.Store, boardID, listID, cardID string) store.Result) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <board> <card>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, ref, err := c.card(args[0], args[1], operation)
			if err != nil {
				return err
			}
			return c.report(operation, op(c.store, board.ID, ref.list.ID, ref.card.ID))
		},
	}
}

// card resolves a board and a card on any of its lists.
func (c *CLI) card(boardRef, cardRefStr, operation string) (*types.Board, cardRef, error) {
	board, err := c.board(boardRef, operation)
	if err != nil {
		return nil, cardRef{}, err
	}
	ref, err := resolveCard(board, cardRefStr, operation)
	if err != nil {
		return nil, cardRef{}, err
	}
	return board, ref, nil
}

package main

import (
	"github.com/spf13/cobra"
)

func (c *CLI) commentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment on cards",
	}

	add := &cobra.Command{
		Use:   "add <board> <card> <text>",
		Short: "Add a comment to a card",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := requireText("add comment", "comment", args[2:])
			if err != nil {
				return err
			}
			board, ref, err := c.card(args[0], args[1], "add comment")
			if err != nil {
				return err
			}
			return c.report("add comment", c.store.AddComment(board.ID, ref.list.ID, ref.card.ID, text))
		},
	}

	edit := &cobra.Command{
		Use:   "edit <board> <card> <comment-id> <text>",
		Short: "Replace the text of a comment",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := requireText("edit comment", "comment", args[3:])
			if err != nil {
				return err
			}
			board, ref, err := c.card(args[0], args[1], "edit comment")
			if err != nil {
				return err
			}
			return c.report("edit comment", c.store.UpdateComment(board.ID, ref.list.ID, ref.card.ID, args[2], text))
		},
	}

	rm := &cobra.Command{
		Use:   "rm <board> <card> <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, ref, err := c.card(args[0], args[1], "delete comment")
			if err != nil {
				return err
			}
			return c.report("delete comment", c.store.DeleteComment(board.ID, ref.list.ID, ref.card.ID, args[2]))
		},
	}

	cmd.AddCommand(add, edit, rm)
	return cmd
}

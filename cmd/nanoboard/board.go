package main

import (
	"fmt"
	"io"

	"github.com/arthur-debert/nanoboard/nanoboard/export"
	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/arthur-debert/nanoboard/types"
	"github.com/spf13/cobra"
)

func (c *CLI) boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Create, list and organize boards",
	}

	var background string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := requireText("add board", "title", args)
			if err != nil {
				return err
			}
			s, err := c.Store()
			if err != nil {
				return err
			}
			return c.report("add board", s.AddBoard(title, background))
		},
	}
	add.Flags().StringVar(&background, "background", "", "background color or image URL")

	var filter string
	ls := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List boards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.Store()
			if err != nil {
				return err
			}
			var boards []*types.Board
			switch filter {
			case "open":
				boards = s.OpenBoards()
			case "starred":
				boards = s.StarredBoards()
			case "closed":
				boards = s.ClosedBoards()
			case "all":
				boards = s.Boards()
			default:
				return NewValidationError("list boards", "filter", filter, "Use one of: open, starred, closed, all")
			}
			return c.render(boards, func(w io.Writer) error {
				if len(boards) == 0 {
					_, err := fmt.Fprintln(w, "no boards")
					return err
				}
				return writeBoardTable(w, boards)
			})
		},
	}
	ls.Flags().StringVar(&filter, "filter", "open", "open|starred|closed|all")

	show := &cobra.Command{
		Use:   "show <board>",
		Short: "Show a board with its lists and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := c.board(args[0], "show board")
			if err != nil {
				return err
			}
			return c.render(board, func(w io.Writer) error {
				_, err := io.WriteString(w, export.RenderBoard(board))
				return err
			})
		},
	}

	cmd.AddCommand(
		add,
		ls,
		show,
		c.boardAction("close", "Close a board", "close board", (*store.Store).CloseBoard),
		c.boardAction("reopen", "Reopen a closed board", "reopen board", (*store.Store).ReopenBoard),
		c.boardAction("star", "Star or unstar a board", "star board", (*store.Store).ToggleStar),
		c.boardAction("rm", "Delete a board", "remove board", (*store.Store).RemoveBoard),
	)
	return cmd
}

// boardAction builds a command that applies op to one board.
func (c *CLI) boardAction(use, short, operation string, op func(*store.Store, string) store.Result) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <board>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := c.board(args[0], operation)
			if err != nil {
				return err
			}
			return c.report(operation, op(c.store, board.ID))
		},
	}
}

// board opens the store and resolves ref among all boards.
func (c *CLI) board(ref, operation string) (*types.Board, error) {
	s, err := c.Store()
	if err != nil {
		return nil, err
	}
	return resolveBoard(s.Boards(), ref, operation)
}

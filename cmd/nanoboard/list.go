package main

import (
	"strconv"

	"github.com/arthur-debert/nanoboard/types"
	"github.com/spf13/cobra"
)

func (c *CLI) listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage the lists of a board",
	}

	add := &cobra.Command{
		Use:   "add <board> <title>",
		Short: "Append a list to a board",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := requireText("add list", "title", args[1:])
			if err != nil {
				return err
			}
			board, err := c.board(args[0], "add list")
			if err != nil {
				return err
			}
			return c.report("add list", c.store.AddList(board.ID, title))
		},
	}

	rm := &cobra.Command{
		Use:   "rm <board> <list>",
		Short: "Delete a list and its cards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, list, err := c.list(args[0], args[1], "remove list")
			if err != nil {
				return err
			}
			return c.report("remove list", c.store.RemoveList(board.ID, list.ID))
		},
	}

	rename := &cobra.Command{
		Use:   "rename <board> <list> <title>",
		Short: "Rename a list",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := requireText("rename list", "title", args[2:])
			if err != nil {
				return err
			}
			board, list, err := c.list(args[0], args[1], "rename list")
			if err != nil {
				return err
			}
			return c.report("rename list", c.store.UpdateListTitle(board.ID, list.ID, title))
		},
	}

	bg := &cobra.Command{
		Use:   "bg <board> <list> [color]",
		Short: "Set a list background; omit the color to clear it",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, list, err := c.list(args[0], args[1], "set list background")
			if err != nil {
				return err
			}
			color := types.NoBackground
			if len(args) == 3 {
				color = args[2]
			}
			return c.report("set list background", c.store.UpdateListBackground(board.ID, list.ID, color))
		},
	}

	mv := &cobra.Command{
		Use:   "mv <board> <list> <position>",
		Short: "Move a list to another position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[2])
			if err != nil {
				return NewValidationError("move list", "position", args[2], "Positions are whole numbers starting at 1")
			}
			board, list, err := c.list(args[0], args[1], "move list")
			if err != nil {
				return err
			}
			from := board.ListIndex(list.ID)
			return c.report("move list", c.store.MoveList(board.ID, from, pos-1))
		},
	}

	cmd.AddCommand(add, rm, rename, bg, mv)
	return cmd
}

// list resolves a board and one of its lists.
func (c *CLI) list(boardRef, listRef, operation string) (*types.Board, *types.List, error) {
	board, err := c.board(boardRef, operation)
	if err != nil {
		return nil, nil, err
	}
	list, err := resolveList(board, listRef, operation)
	if err != nil {
		return nil, nil, err
	}
	return board, list, nil
}

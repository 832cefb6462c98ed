package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/nanoboard/nanoboard/export"
	"github.com/spf13/cobra"
)

func (c *CLI) exportCommand() *cobra.Command {
	var (
		outputDir string
		markdown  bool
	)
	cmd := &cobra.Command{
		Use:   "export <board>",
		Short: "Export a board as a zip archive or Markdown",
		Long: `Export a board.

The zip archive holds db.json, a storage document with just this board
that can be restored as a slot, and one Markdown file per card laid out
as <NN>-<list>/<NN>-<card>.md. With --markdown the board overview is
written to stdout instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := c.board(args[0], "export board")
			if err != nil {
				return err
			}
			if markdown {
				_, err := io.WriteString(c.out, export.RenderBoard(board))
				return err
			}

			data, err := export.GenerateExportData(board, time.Now())
			if err != nil {
				return &CLIError{Operation: "export board", Cause: "failed to render board", Underlying: err}
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return &CLIError{Operation: "export board", Cause: "cannot create output directory", Details: err.Error(), Underlying: err}
			}
			path := filepath.Join(outputDir, data.ArchiveFilename)
			if err := export.CreateExportArchive(data, path); err != nil {
				return &CLIError{Operation: "export board", Cause: "failed to write archive", Details: err.Error(), Underlying: err}
			}
			c.logger.Info("board exported", "board", board.ID, "archive", path, "cards", len(data.Contents.Cards))
			_, err = fmt.Fprintln(c.out, path)
			return err
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory the archive is written to")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the board as Markdown instead")
	return cmd
}

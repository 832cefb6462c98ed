package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/arthur-debert/nanoboard/nanoboard/search"
	"github.com/spf13/cobra"
)

func (c *CLI) searchCommand() *cobra.Command {
	var (
		boardRef      string
		includeClosed bool
		limit         int
		fields        []string
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find cards by title, description or comment text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := requireText("search cards", "query", args)
			if err != nil {
				return err
			}
			s, err := c.Store()
			if err != nil {
				return err
			}

			opts := search.Options{
				Query:         query,
				IncludeClosed: includeClosed,
				MaxResults:    limit,
				Highlight:     c.format == "" || c.format == "text",
			}
			for _, f := range fields {
				opts.Fields = append(opts.Fields, search.Field(f))
			}
			if boardRef != "" {
				board, err := resolveBoard(s.Boards(), boardRef, "search cards")
				if err != nil {
					return err
				}
				opts.BoardID = board.ID
			}

			results, err := search.NewEngine(s).Search(opts)
			if err != nil {
				return &CLIError{Operation: "search cards", Cause: err.Error(), Suggestions: []string{"Use --field title, description or comments"}, Underlying: err}
			}
			return c.render(results, func(w io.Writer) error {
				if len(results) == 0 {
					_, err := fmt.Fprintln(w, "no matching cards")
					return err
				}
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "CARD\tBOARD\tLIST\tMATCH")
				for _, r := range results {
					title := r.Card.Title
					if h, ok := r.Highlights[search.FieldTitle]; ok {
						title = h
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", title, r.BoardTitle, r.ListTitle, r.MatchType)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&boardRef, "board", "", "only search this board")
	cmd.Flags().BoolVar(&includeClosed, "closed", false, "include closed boards")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	cmd.Flags().StringSliceVar(&fields, "field", nil, "fields to search: title|description|comments")
	return cmd
}

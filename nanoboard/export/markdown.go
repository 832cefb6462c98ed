package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/nanoboard/types"
)

const timeLayout = time.RFC3339

// RenderBoard renders a board overview: one section per list with a
// checklist of its cards.
func RenderBoard(board *types.Board) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", board.Title)

	var flags []string
	if board.IsStarred {
		flags = append(flags, "starred")
	}
	if board.IsClosed {
		flags = append(flags, "closed")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, "\n_%s_\n", strings.Join(flags, ", "))
	}
	if board.Description != nil && *board.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", *board.Description)
	}
	if len(board.Members) > 0 {
		fmt.Fprintf(&b, "\nMembers: %s\n", strings.Join(board.Members, ", "))
	}

	for _, list := range board.Lists {
		fmt.Fprintf(&b, "\n## %s\n\n", list.Title)
		if len(list.Cards) == 0 {
			b.WriteString("_No cards_\n")
			continue
		}
		for _, card := range list.Cards {
			box := " "
			if card.IsCompleted {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", box, card.Title)
		}
	}
	return b.String()
}

// RenderCard renders a card the way its detail view presents it: status,
// description, comments and the activity log, newest first.
func RenderCard(card *types.Card, listTitle string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", card.Title)

	status := "open"
	if card.IsCompleted {
		status = "complete"
	}
	fmt.Fprintf(&b, "- List: %s\n", listTitle)
	fmt.Fprintf(&b, "- Status: %s\n", status)
	if card.IsWatching {
		b.WriteString("- Watching: yes\n")
	}
	fmt.Fprintf(&b, "- Created: %s\n", card.CreatedAt.Time().Format(timeLayout))

	if desc := card.DescriptionText(); desc != "" {
		fmt.Fprintf(&b, "\n## Description\n\n%s\n", strings.TrimRight(desc, "\n"))
	}

	if len(card.Comments) > 0 {
		b.WriteString("\n## Comments\n\n")
		for i := len(card.Comments) - 1; i >= 0; i-- {
			c := card.Comments[i]
			edited := ""
			if c.UpdatedAt != nil {
				edited = " (edited)"
			}
			fmt.Fprintf(&b, "- **%s** %s%s: %s\n", c.UserName, c.CreatedAt.Time().Format(timeLayout), edited, c.Content)
		}
	}

	if len(card.Activities) > 0 {
		b.WriteString("\n## Activity\n\n")
		for i := len(card.Activities) - 1; i >= 0; i-- {
			a := card.Activities[i]
			fmt.Fprintf(&b, "- **%s** %s (%s)\n", a.UserName, a.Text(), a.CreatedAt.Time().Format(timeLayout))
		}
	}
	return b.String()
}

// lastModified is the newest timestamp recorded on a card.
func lastModified(card *types.Card) types.Timestamp {
	latest := card.CreatedAt
	for _, a := range card.Activities {
		latest = max(latest, a.CreatedAt)
	}
	for _, c := range card.Comments {
		latest = max(latest, c.CreatedAt)
		if c.UpdatedAt != nil {
			latest = max(latest, *c.UpdatedAt)
		}
	}
	return latest
}

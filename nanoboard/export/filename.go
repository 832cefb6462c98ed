package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

const maxNameLength = 40

var dashRuns = regexp.MustCompile("-+")

// cardFilename places a card under its list directory, numbering both by
// position so the archive sorts in board order:
// 01-todo/02-write-release-notes.md
func cardFilename(listIndex int, listTitle string, cardIndex int, cardTitle string) string {
	return fmt.Sprintf("%02d-%s/%02d-%s.md", listIndex+1, sanitizeTitle(listTitle), cardIndex+1, sanitizeTitle(cardTitle))
}

// archiveFilename names the zip after the board and the export time.
func archiveFilename(boardTitle string, at time.Time) string {
	return fmt.Sprintf("%s-%s.zip", sanitizeTitle(boardTitle), at.UTC().Format("2006-01-02T15-04-05"))
}

// sanitizeTitle lowercases a title and keeps letters, digits, dashes and
// underscores, collapsing whitespace into single dashes.
func sanitizeTitle(title string) string {
	result := strings.ToLower(strings.Join(strings.Fields(title), "-"))

	var builder strings.Builder
	for _, r := range result {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			builder.WriteRune(r)
		}
	}

	result = dashRuns.ReplaceAllString(builder.String(), "-")
	result = strings.Trim(result, "-")

	if runes := []rune(result); len(runes) > maxNameLength {
		result = strings.TrimRight(string(runes[:maxNameLength]), "-")
	}
	if result == "" {
		result = "untitled"
	}
	return result
}

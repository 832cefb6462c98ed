// Package search finds cards by text across boards, ranking title hits
// above description and comment hits.
package search

import "github.com/arthur-debert/nanoboard/types"

// Field is a searchable part of a card.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldComments    Field = "comments"
)

// AllFields is searched when Options.Fields is empty.
var AllFields = []Field{FieldTitle, FieldDescription, FieldComments}

// Options configures a search.
type Options struct {
	// Query is the text to look for. An empty query matches nothing.
	Query string

	// BoardID restricts the search to one board.
	BoardID string

	// IncludeClosed also searches closed boards.
	IncludeClosed bool

	// Fields limits where to look; empty searches every field.
	Fields []Field

	// CaseSensitive disables case folding.
	CaseSensitive bool

	// Highlight wraps matches in HighlightMarker in Result.Highlights.
	Highlight bool

	// MaxResults caps the result count; zero means no limit.
	MaxResults int
}

// HighlightMarker surrounds highlighted matches (Markdown bold).
const HighlightMarker = "**"

// MatchType describes the best match found on a card.
type MatchType string

const (
	MatchExactTitle   MatchType = "exact_title"
	MatchPartialTitle MatchType = "partial_title"
	MatchDescription  MatchType = "description"
	MatchComment      MatchType = "comment"
)

// Result is one matching card with its location and relevance.
type Result struct {
	BoardID    string      `json:"boardId"`
	BoardTitle string      `json:"boardTitle"`
	ListID     string      `json:"listId"`
	ListTitle  string      `json:"listTitle"`
	Card       *types.Card `json:"card"`

	// Score is the relevance in (0, 1]; higher is better.
	Score     float64   `json:"score"`
	MatchType MatchType `json:"matchType"`

	MatchedFields []Field          `json:"matchedFields"`
	Highlights    map[Field]string `json:"highlights,omitempty"`
}

// BoardProvider supplies the boards to search. *store.Store implements it.
type BoardProvider interface {
	Boards() []*types.Board
}

package search

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/arthur-debert/nanoboard/types"
)

// Engine searches the cards of the boards its provider returns.
type Engine struct {
	provider BoardProvider
}

// NewEngine creates a search engine over provider.
func NewEngine(provider BoardProvider) *Engine {
	return &Engine{provider: provider}
}

// Search returns the matching cards, best first. Cards with equal scores
// keep board, list and card order.
func (e *Engine) Search(opts Options) ([]Result, error) {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = AllFields
	}
	for _, f := range fields {
		if !slices.Contains(AllFields, f) {
			return nil, fmt.Errorf("unknown search field %q", f)
		}
	}

	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return []Result{}, nil
	}
	if !opts.CaseSensitive {
		query = strings.ToLower(query)
	}

	results := []Result{}
	for _, board := range e.provider.Boards() {
		if board == nil || (opts.BoardID != "" && board.ID != opts.BoardID) {
			continue
		}
		if board.IsClosed && !opts.IncludeClosed && opts.BoardID == "" {
			continue
		}
		for _, list := range board.Lists {
			if list == nil {
				continue
			}
			for _, card := range list.Cards {
				if card == nil {
					continue
				}
				if r, ok := searchCard(card, query, fields, opts); ok {
					r.BoardID, r.BoardTitle = board.ID, board.Title
					r.ListID, r.ListTitle = list.ID, list.Title
					results = append(results, r)
				}
			}
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results, nil
}

func searchCard(card *types.Card, query string, fields []Field, opts Options) (Result, bool) {
	r := Result{Card: card}
	for _, field := range fields {
		for _, text := range fieldValues(card, field) {
			score, kind, ok := matchText(text, query, field, opts.CaseSensitive)
			if !ok {
				continue
			}
			if !slices.Contains(r.MatchedFields, field) {
				r.MatchedFields = append(r.MatchedFields, field)
			}
			if score > r.Score {
				r.Score, r.MatchType = score, kind
			}
			if opts.Highlight {
				if r.Highlights == nil {
					r.Highlights = make(map[Field]string)
				}
				if _, seen := r.Highlights[field]; !seen {
					r.Highlights[field] = highlight(text, query, opts.CaseSensitive)
				}
			}
		}
	}
	return r, len(r.MatchedFields) > 0
}

func fieldValues(card *types.Card, field Field) []string {
	switch field {
	case FieldTitle:
		return []string{card.Title}
	case FieldDescription:
		if card.Description == nil {
			return nil
		}
		return []string{*card.Description}
	case FieldComments:
		values := make([]string, len(card.Comments))
		for i, c := range card.Comments {
			values[i] = c.Content
		}
		return values
	}
	return nil
}

// matchText scores text against an already case-folded query.
func matchText(text, query string, field Field, caseSensitive bool) (float64, MatchType, bool) {
	folded := text
	if !caseSensitive {
		folded = strings.ToLower(text)
	}
	if !strings.Contains(folded, query) {
		return 0, "", false
	}

	var score float64
	var kind MatchType
	switch field {
	case FieldTitle:
		if folded == query {
			return 1.0, MatchExactTitle, true
		}
		score, kind = 0.7, MatchPartialTitle
	case FieldDescription:
		score, kind = 0.5, MatchDescription
	default:
		score, kind = 0.4, MatchComment
	}

	if strings.HasPrefix(folded, query) {
		score += 0.1
	}
	if float64(len(query))/float64(len(folded)) > 0.5 {
		score += 0.1
	}
	return min(score, 0.95), kind, true
}

// highlight marks every non-overlapping occurrence of query in text.
func highlight(text, query string, caseSensitive bool) string {
	folded := text
	if !caseSensitive {
		folded = strings.ToLower(text)
	}
	// Case folding may change byte lengths; fall back to the plain text.
	if len(folded) != len(text) {
		return text
	}

	var b strings.Builder
	last := 0
	for i := 0; i+len(query) <= len(folded); {
		if folded[i:i+len(query)] != query {
			i++
			continue
		}
		b.WriteString(text[last:i])
		b.WriteString(HighlightMarker)
		b.WriteString(text[i : i+len(query)])
		b.WriteString(HighlightMarker)
		i += len(query)
		last = i
	}
	b.WriteString(text[last:])
	return b.String()
}

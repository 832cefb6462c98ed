package search_test

import (
	"testing"

	"github.com/arthur-debert/nanoboard/nanoboard/search"
	"github.com/arthur-debert/nanoboard/testutil"
	"github.com/arthur-debert/nanoboard/types"
	"github.com/google/go-cmp/cmp"
)

// staticBoards is a BoardProvider over a fixed slice.
type staticBoards []*types.Board

func (s staticBoards) Boards() []*types.Board { return s }

func cardIDs(results []search.Result) []string {
	ids := []string{}
	for _, r := range results {
		ids = append(ids, r.Card.ID)
	}
	return ids
}

func TestSearchFixture(t *testing.T) {
	p := testutil.LoadProject(t)
	engine := search.NewEngine(p.Store)

	tests := []struct {
		name string
		opts search.Options
		want []string
	}{
		{"empty query", search.Options{Query: "  "}, []string{}},
		{"title beats description", search.Options{Query: "a"}, []string{testutil.CardA, testutil.CardB}},
		{"comments", search.Options{Query: "REVIEW"}, []string{testutil.CardC}},
		{"title field only", search.Options{Query: "card", Fields: []search.Field{search.FieldTitle}}, []string{}},
		{"description field only", search.Options{Query: "card", Fields: []search.Field{search.FieldDescription}}, []string{testutil.CardB}},
		{"case sensitive miss", search.Options{Query: "second", CaseSensitive: true}, []string{}},
		{"case sensitive hit", search.Options{Query: "Second", CaseSensitive: true}, []string{testutil.CardB}},
		{"max results", search.Options{Query: "a", MaxResults: 1}, []string{testutil.CardA}},
		{"other board", search.Options{Query: "a", BoardID: testutil.BoardArchive}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := engine.Search(tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, cardIDs(results)); diff != "" {
				t.Errorf("results mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("result carries location and match type", func(t *testing.T) {
		results, err := engine.Search(search.Options{Query: "review", Highlight: true})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		r := results[0]
		if r.BoardTitle != "P" || r.ListID != testutil.ListTodo || r.ListTitle != "Todo" {
			t.Errorf("unexpected location %+v", r)
		}
		if r.MatchType != search.MatchComment {
			t.Errorf("expected comment match, got %q", r.MatchType)
		}
		if got := r.Highlights[search.FieldComments]; got != "Needs **review**" {
			t.Errorf("unexpected highlight %q", got)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		if _, err := engine.Search(search.Options{Query: "a", Fields: []search.Field{"labels"}}); err == nil {
			t.Error("expected error for unknown field")
		}
	})
}

func TestSearchScoring(t *testing.T) {
	desc := "deploy the release"
	boards := staticBoards{
		{ID: "b1", Title: "Open", Lists: []*types.List{{ID: "l1", Title: "Todo", Cards: []*types.Card{
			{ID: "c1", Title: "Notes", Description: &desc},
			{ID: "c2", Title: "Release planning"},
			{ID: "c3", Title: "release"},
			{ID: "c4", Title: "Draft release notes"},
		}}}},
		{ID: "b2", Title: "Closed", IsClosed: true, Lists: []*types.List{{ID: "l2", Title: "Done", Cards: []*types.Card{
			{ID: "c5", Title: "Release"},
		}}}},
	}
	engine := search.NewEngine(boards)

	results, err := engine.Search(search.Options{Query: "release"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"c3", "c2", "c4", "c1"}, cardIDs(results)); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
	if results[0].MatchType != search.MatchExactTitle || results[0].Score != 1.0 {
		t.Errorf("expected exact title match first, got %+v", results[0])
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted by score at %d", i)
		}
	}

	closed, err := engine.Search(search.Options{Query: "release", IncludeClosed: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(closed) != 5 {
		t.Errorf("expected closed board included, got %v", cardIDs(closed))
	}

	scoped, err := engine.Search(search.Options{Query: "release", BoardID: "b2"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"c5"}, cardIDs(scoped)); diff != "" {
		t.Errorf("explicit board scope should include closed boards (-want +got):\n%s", diff)
	}
}

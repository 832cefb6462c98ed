package testutil

import (
	"slices"
	"testing"

	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/arthur-debert/nanoboard/types"
	"github.com/google/go-cmp/cmp"
)

// AssertOutcome fails the test when res did not end with want.
func AssertOutcome(t *testing.T, res store.Result, want store.Outcome) {
	t.Helper()
	if res.Outcome != want {
		t.Fatalf("%s: expected outcome %s, got %s (%s)", res.Op, want, res.Outcome, res.Reason)
	}
}

// CardTitles returns the titles of the cards of a list, in order.
func CardTitles(list *types.List) []string {
	titles := make([]string, 0, len(list.Cards))
	for _, c := range list.Cards {
		titles = append(titles, c.Title)
	}
	return titles
}

// ListTitles returns the titles of the lists of a board, in order.
func ListTitles(board *types.Board) []string {
	titles := make([]string, 0, len(board.Lists))
	for _, l := range board.Lists {
		titles = append(titles, l.Title)
	}
	return titles
}

// AssertCardTitles checks the card order of a list.
func AssertCardTitles(t *testing.T, list *types.List, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, CardTitles(list)); diff != "" {
		t.Errorf("list %q cards mismatch (-want +got):\n%s", list.Title, diff)
	}
}

// AssertListTitles checks the list order of a board.
func AssertListTitles(t *testing.T, board *types.Board, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, ListTitles(board)); diff != "" {
		t.Errorf("board %q lists mismatch (-want +got):\n%s", board.Title, diff)
	}
}

// ActivitiesOfType returns the activities of a card with the given type.
func ActivitiesOfType(card *types.Card, kind types.ActivityType) []types.Activity {
	var out []types.Activity
	for _, a := range card.Activities {
		if a.Type == kind {
			out = append(out, a)
		}
	}
	return out
}

// AssertLastActivity checks the type and payload of the newest activity of a card.
func AssertLastActivity(t *testing.T, card *types.Card, kind types.ActivityType, data types.ActivityData) {
	t.Helper()
	if len(card.Activities) == 0 {
		t.Fatalf("card %q has no activities", card.Title)
	}
	last := card.Activities[len(card.Activities)-1]
	if last.Type != kind {
		t.Errorf("card %q last activity type: expected %s, got %s", card.Title, kind, last.Type)
	}
	if diff := cmp.Diff(data, last.Data); diff != "" {
		t.Errorf("card %q last activity data mismatch (-want +got):\n%s", card.Title, diff)
	}
}

// AssertUniqueCardIDs checks that no card id appears twice across the
// lists of any board.
func AssertUniqueCardIDs(t *testing.T, state *types.State) {
	t.Helper()
	for _, b := range state.Boards {
		var ids []string
		for _, l := range b.Lists {
			for _, c := range l.Cards {
				ids = append(ids, c.ID)
			}
		}
		sorted := slices.Clone(ids)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != len(ids) {
			t.Errorf("board %q has duplicate card ids: %v", b.Title, ids)
		}
	}
}

package storage_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/arthur-debert/nanoboard/nanoboard/storage"
	"github.com/arthur-debert/nanoboard/testutil"
	"github.com/arthur-debert/nanoboard/types"
	"github.com/google/go-cmp/cmp"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Run("decode then encode is byte identical", func(t *testing.T) {
		data := testutil.FixtureBytes(t)

		state, err := storage.Decode(data)
		if err != nil {
			t.Fatalf("failed to decode fixture: %v", err)
		}
		out, err := storage.Encode(state)
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		if diff := cmp.Diff(string(data), string(out)); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("board description and empty members survive", func(t *testing.T) {
		data := []byte(`{
  "state": {
    "boards": [
      {
        "id": "b1",
        "title": "Roadmap",
        "description": "team roadmap",
        "background": "#0079bf",
        "lists": [],
        "isStarred": false,
        "isClosed": false,
        "members": []
      },
      {
        "id": "b2",
        "title": "Solo",
        "background": "#0079bf",
        "lists": [],
        "isStarred": false,
        "isClosed": false
      }
    ]
  },
  "version": 1
}
`)
		state, err := storage.Decode(data)
		if err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if d := state.Boards[0].Description; d == nil || *d != "team roadmap" {
			t.Errorf("expected board description, got %v", d)
		}
		if state.Boards[1].Members != nil {
			t.Errorf("expected absent members to stay nil, got %#v", state.Boards[1].Members)
		}

		out, err := storage.Encode(state)
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		if diff := cmp.Diff(string(data), string(out)); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("encode then decode reproduces the tree", func(t *testing.T) {
		desc := "with <html> & urls"
		updated := types.Timestamp(1700000009000)
		state := &types.State{Boards: []*types.Board{{
			ID:         "b1",
			Title:      "Board",
			Background: "https://example.com/bg.jpg?w=2000&fit=crop",
			Lists: []*types.List{{
				ID:    "l1",
				Title: "List",
				Cards: []*types.Card{{
					ID:          "c1",
					Title:       "Card",
					Description: &desc,
					CreatedAt:   1700000000000,
					Activities: []types.Activity{{
						ID: "a1", Type: types.ActivityMove,
						Data:      types.ActivityData{From: "position 1", To: "position 2"},
						CreatedAt: 1700000001000, UserID: "john", UserName: "John",
					}},
					Comments: []types.Comment{{
						ID: "m1", Content: "hi", UserID: "john", UserName: "John",
						CreatedAt: 1700000002000, UpdatedAt: &updated,
					}},
				}},
			}},
			IsStarred: true,
		}}}

		data, err := storage.Encode(state)
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		if !bytes.Contains(data, []byte("w=2000&fit=crop")) {
			t.Error("expected URLs to be stored without HTML escaping")
		}
		got, err := storage.Decode(data)
		if err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if diff := cmp.Diff(state, got); diff != "" {
			t.Errorf("tree mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("optional fields stay absent", func(t *testing.T) {
		data, err := storage.Encode(&types.State{Boards: []*types.Board{{
			ID: "b", Lists: []*types.List{{ID: "l", Cards: []*types.Card{{ID: "c"}}}},
		}}})
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		for _, key := range []string{`"description"`, `"updatedAt"`, `"members"`, `"background": "#`} {
			if bytes.Contains(data, []byte(key)) {
				t.Errorf("unexpected %s in %s", key, data)
			}
		}
	})
}

func TestDecodeMigratesLegacyDocuments(t *testing.T) {
	legacy := `{
  "state": {
    "boards": [
      {
        "id": "1",
        "title": "My trello board",
        "background": "#0079bf",
        "lists": [
          {"id": "l1", "title": "Todo", "cards": [{"id": "c1", "title": "Old", "createdAt": 1600000000000}]},
          {"id": "l2", "title": "Empty"}
        ],
        "isStarred": false,
        "isClosed": false
      }
    ],
    "lists": []
  }
}`
	state, err := storage.Decode([]byte(legacy))
	if err != nil {
		t.Fatalf("failed to decode legacy document: %v", err)
	}

	board := state.Boards[0]
	card := board.Lists[0].Cards[0]
	if card.Activities == nil || card.Comments == nil {
		t.Error("expected card collections to be filled")
	}
	if board.Lists[1].Cards == nil {
		t.Error("expected list cards to be filled")
	}

	data, err := storage.Encode(state)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(string(data)), `"version": 1
}`) {
		t.Errorf("expected current version in output:\n%s", data)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("expected no null collections:\n%s", data)
	}
}

func TestDecodeRejectsCorruptDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{"state":`},
		{"boards not an array", `{"state":{"boards":{}},"version":1}`},
		{"missing state", `{"version":1}`},
		{"board without id", `{"state":{"boards":[{"title":"x"}]},"version":1}`},
		{"empty card id", `{"state":{"boards":[{"id":"b","title":"x","lists":[{"id":"l","title":"y","cards":[{"id":"","title":"z"}]}]}]},"version":1}`},
		{"unknown activity type", `{"state":{"boards":[{"id":"b","title":"x","lists":[{"id":"l","title":"y","cards":[{"id":"c","title":"z","activities":[{"id":"a","type":"archive"}]}]}]}]},"version":1}`},
		{"fractional timestamp", `{"state":{"boards":[{"id":"b","title":"x","lists":[{"id":"l","title":"y","cards":[{"id":"c","title":"z","createdAt":1.5}]}]}]},"version":1}`},
		{"duplicate board ids", `{"state":{"boards":[{"id":"b","title":"x"},{"id":"b","title":"y"}]},"version":1}`},
		{"card in two lists", `{"state":{"boards":[{"id":"b","title":"x","lists":[{"id":"l1","title":"y","cards":[{"id":"c","title":"z"}]},{"id":"l2","title":"w","cards":[{"id":"c","title":"z"}]}]}]},"version":1}`},
		{"future version", `{"state":{"boards":[]},"version":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.Decode([]byte(tt.doc))
			if !errors.Is(err, storage.ErrCorruptSlot) {
				t.Errorf("expected ErrCorruptSlot, got %v", err)
			}
		})
	}

	t.Run("blank content is an empty slot", func(t *testing.T) {
		_, err := storage.Decode([]byte("  \n"))
		if !errors.Is(err, storage.ErrEmptySlot) {
			t.Errorf("expected ErrEmptySlot, got %v", err)
		}
	})
}

func TestAdapter(t *testing.T) {
	slot := storage.NewMemorySlot("")
	adapter := storage.NewAdapter(slot)

	if _, err := adapter.Load(t.Context()); !errors.Is(err, storage.ErrEmptySlot) {
		t.Fatalf("expected ErrEmptySlot, got %v", err)
	}

	state := types.DefaultState()
	if err := adapter.Save(t.Context(), state); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	got, err := adapter.Load(t.Context())
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if diff := cmp.Diff(state, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	slot.SaveError = errors.New("quota exceeded")
	if err := adapter.Save(t.Context(), state); err == nil || !strings.Contains(err.Error(), storage.DefaultSlotName) {
		t.Errorf("expected slot error naming the slot, got %v", err)
	}
}

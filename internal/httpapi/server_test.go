package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/nanoboard/nanoboard/metrics"
	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/arthur-debert/nanoboard/testutil"
	"github.com/arthur-debert/nanoboard/types"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
)

type decodedResult struct {
	Op      string `json:"op"`
	Outcome string `json:"outcome"`
	ID      string `json:"id"`
	Reason  string `json:"reason"`
}

type decodedMutation struct {
	Result decodedResult `json:"result"`
	Board  *types.Board  `json:"board"`
}

func newTestServer(t *testing.T, opts ...Option) (*testutil.Project, http.Handler) {
	t.Helper()
	p := testutil.LoadProject(t)
	return p, New(p.Store, opts...).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeMutation(t *testing.T, w *httptest.ResponseRecorder) decodedMutation {
	t.Helper()
	var m decodedMutation
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return m
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		outcome store.Outcome
		created bool
		want    int
	}{
		{store.Applied, false, http.StatusOK},
		{store.Applied, true, http.StatusCreated},
		{store.NoChange, true, http.StatusOK},
		{store.NotFound, false, http.StatusNotFound},
		{store.InvalidRange, false, http.StatusUnprocessableEntity},
		{store.Corrupted, false, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			if got := statusFor(store.Result{Outcome: tt.outcome}, tt.created); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestReadEndpoints(t *testing.T) {
	p, h := newTestServer(t)

	t.Run("boards by filter", func(t *testing.T) {
		tests := []struct {
			filter string
			want   []string
		}{
			{"", []string{testutil.BoardP}},
			{"starred", []string{testutil.BoardP}},
			{"closed", []string{testutil.BoardArchive}},
			{"all", []string{testutil.BoardP, testutil.BoardArchive}},
		}
		for _, tt := range tests {
			w := do(t, h, http.MethodGet, "/api/boards?filter="+tt.filter, "")
			if w.Code != http.StatusOK {
				t.Fatalf("filter %q: expected 200, got %d", tt.filter, w.Code)
			}
			var boards []*types.Board
			if err := json.Unmarshal(w.Body.Bytes(), &boards); err != nil {
				t.Fatal(err)
			}
			var ids []string
			for _, b := range boards {
				ids = append(ids, b.ID)
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("filter %q mismatch (-want +got):\n%s", tt.filter, diff)
			}
		}

		if w := do(t, h, http.MethodGet, "/api/boards?filter=bogus", ""); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for unknown filter, got %d", w.Code)
		}
	})

	t.Run("single board", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/boards/"+testutil.BoardP, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var board types.Board
		if err := json.Unmarshal(w.Body.Bytes(), &board); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(p.Board(t), &board); diff != "" {
			t.Errorf("board mismatch (-want +got):\n%s", diff)
		}
		if got := w.Header().Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}

		if w := do(t, h, http.MethodGet, "/api/boards/nope", ""); w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("card", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/boards/board-p/lists/list-todo/cards/card-b", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"Second card"`) {
			t.Errorf("expected description in %s", w.Body.String())
		}
		if w := do(t, h, http.MethodGet, "/api/boards/board-p/lists/list-done/cards/card-b", ""); w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for card in wrong list, got %d", w.Code)
		}
	})

	t.Run("search", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/search?q=review&highlight=true", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var results []struct {
			ListID     string            `json:"listId"`
			Card       types.Card        `json:"card"`
			Highlights map[string]string `json:"highlights"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
			t.Fatal(err)
		}
		if len(results) != 1 || results[0].Card.ID != testutil.CardC || results[0].ListID != testutil.ListTodo {
			t.Fatalf("unexpected results %+v", results)
		}
		if results[0].Highlights["comments"] != "Needs **review**" {
			t.Errorf("unexpected highlights %v", results[0].Highlights)
		}

		for _, bad := range []string{"/api/search?q=a&limit=x", "/api/search?q=a&field=labels"} {
			if w := do(t, h, http.MethodGet, bad, ""); w.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", bad, w.Code)
			}
		}
	})

	t.Run("state", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/state", "")
		var state types.State
		if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
			t.Fatal(err)
		}
		if len(state.Boards) != 2 {
			t.Errorf("expected 2 boards, got %d", len(state.Boards))
		}
	})
}

func TestMutationEndpoints(t *testing.T) {
	t.Run("add card returns 201 with the board", func(t *testing.T) {
		p, h := newTestServer(t)
		w := do(t, h, http.MethodPost, "/api/boards/board-p/lists/list-doing/cards", `{"title":"  New  "}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		m := decodeMutation(t, w)
		if m.Result.Op != store.OpAddCard || m.Result.Outcome != "applied" || m.Result.ID == "" {
			t.Errorf("unexpected result %+v", m.Result)
		}
		if m.Board == nil || len(m.Board.Lists[1].Cards) != 1 {
			t.Fatalf("expected the new card in the returned board")
		}
		testutil.AssertCardTitles(t, p.List(t, testutil.ListDoing), "New")
	})

	t.Run("move card across lists", func(t *testing.T) {
		p, h := newTestServer(t)
		body := `{"fromListId":"list-todo","fromIndex":0,"toListId":"list-done","toIndex":1}`
		w := do(t, h, http.MethodPost, "/api/boards/board-p/cards/move", body)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertCardTitles(t, p.List(t, testutil.ListTodo), "B", "C")
		testutil.AssertCardTitles(t, p.List(t, testutil.ListDone), "D", "A")
	})

	t.Run("move card out of range", func(t *testing.T) {
		p, h := newTestServer(t)
		body := `{"fromListId":"list-todo","fromIndex":0,"toListId":"list-todo","toIndex":3}`
		w := do(t, h, http.MethodPost, "/api/boards/board-p/cards/move", body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if m := decodeMutation(t, w); m.Result.Outcome != "invalid_range" {
			t.Errorf("unexpected outcome %q", m.Result.Outcome)
		}
		if p.Slot.SaveCount() != 0 {
			t.Error("rejected move must not persist")
		}
	})

	t.Run("toggle complete and comment", func(t *testing.T) {
		p, h := newTestServer(t)
		if w := do(t, h, http.MethodPost, "/api/boards/board-p/lists/list-todo/cards/card-a/complete", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !p.Card(t, testutil.ListTodo, testutil.CardA).IsCompleted {
			t.Error("expected card A to be complete")
		}

		w := do(t, h, http.MethodPut, "/api/boards/board-p/lists/list-todo/cards/card-c/comments/comment-c-1", `{"content":"Done"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if got := p.Card(t, testutil.ListTodo, testutil.CardC).Comments[0].Content; got != "Done" {
			t.Errorf("expected updated comment, got %q", got)
		}

		w = do(t, h, http.MethodDelete, "/api/boards/board-p/lists/list-todo/cards/card-c/comments/missing", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for a missing comment, got %d", w.Code)
		}
	})

	t.Run("board lifecycle", func(t *testing.T) {
		p, h := newTestServer(t)
		w := do(t, h, http.MethodPost, "/api/boards", `{"title":"Roadmap","background":"#fff"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		id := decodeMutation(t, w).Result.ID

		if w := do(t, h, http.MethodPost, "/api/boards/"+id+"/close", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		board, _ := p.Store.GetBoard(id)
		if !board.IsClosed {
			t.Error("expected board to be closed")
		}
		if w := do(t, h, http.MethodDelete, "/api/boards/"+id, ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if _, ok := p.Store.GetBoard(id); ok {
			t.Error("expected board to be removed")
		}
	})

	t.Run("lists", func(t *testing.T) {
		p, h := newTestServer(t)
		if w := do(t, h, http.MethodPost, "/api/boards/board-p/lists/move", `{"fromIndex":2,"toIndex":0}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		testutil.AssertListTitles(t, p.Board(t), "Done", "Todo", "Doing")

		if w := do(t, h, http.MethodPut, "/api/boards/board-p/lists/list-doing/title", `{"title":"WIP"}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w := do(t, h, http.MethodPut, "/api/boards/nope/lists/list-doing/title", `{"title":"WIP"}`); w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
		testutil.AssertListTitles(t, p.Board(t), "Done", "Todo", "WIP")
	})

	t.Run("request validation", func(t *testing.T) {
		p, h := newTestServer(t)
		tests := []struct {
			name, method, path, body string
		}{
			{"blank title", http.MethodPost, "/api/boards/board-p/lists", `{"title":"  "}`},
			{"blank comment", http.MethodPost, "/api/boards/board-p/lists/list-todo/cards/card-a/comments", `{"content":""}`},
			{"malformed json", http.MethodPost, "/api/boards", `{"title":`},
			{"unknown field", http.MethodPost, "/api/boards", `{"title":"x","owner":"y"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if w := do(t, h, tt.method, tt.path, tt.body); w.Code != http.StatusBadRequest {
					t.Errorf("expected 400, got %d", w.Code)
				}
			})
		}
		if p.Slot.SaveCount() != 0 {
			t.Error("rejected requests must not persist")
		}
	})
}

func TestCORS(t *testing.T) {
	_, h := newTestServer(t, WithOrigins([]string{"http://localhost:3000"}))

	r := httptest.NewRequest(http.MethodOptions, "/api/boards", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allowed origin, got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/boards", nil)
	r.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unknown origin, got %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := testutil.LoadProject(t, store.WithMetrics(metrics.New(reg)))
	h := New(p.Store, WithGatherer(reg)).Handler()

	do(t, h, http.MethodPost, "/api/boards/board-p/star", "")

	w := do(t, h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `nanoboard_mutations_total{op="toggleStar",outcome="applied"} 1`) {
		t.Errorf("expected toggleStar counter in:\n%s", w.Body.String())
	}

	_, bare := newTestServer(t)
	if w := do(t, bare, http.MethodGet, "/metrics", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 without a gatherer, got %d", w.Code)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	p := testutil.LoadProject(t)
	srv := New(p.Store)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/api/boards", "application/json", bytes.NewBufferString(`{"title":"Live"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

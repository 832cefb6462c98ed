package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/arthur-debert/nanoboard/nanoboard/search"
	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/arthur-debert/nanoboard/types"
	"github.com/gorilla/mux"
)

// maxBodyBytes caps request bodies; descriptions are the largest payload.
const maxBodyBytes = 1 << 20

// mutationResponse is returned by every mutation endpoint.
type mutationResponse struct {
	Result store.Result `json:"result"`
	Board  *types.Board `json:"board,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type boardRequest struct {
	Title      string `json:"title"`
	Background string `json:"background"`
}

type backgroundRequest struct {
	Background string `json:"background"`
}

type descriptionRequest struct {
	Description string `json:"description"`
}

type contentRequest struct {
	Content string `json:"content"`
}

type moveListRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

type moveCardRequest struct {
	FromListID string `json:"fromListId"`
	FromIndex  int    `json:"fromIndex"`
	ToListID   string `json:"toListId"`
	ToIndex    int    `json:"toIndex"`
}

// statusFor maps a mutation outcome to an HTTP status.
func statusFor(res store.Result, created bool) int {
	switch res.Outcome {
	case store.Applied:
		if created {
			return http.StatusCreated
		}
		return http.StatusOK
	case store.NoChange:
		return http.StatusOK
	case store.NotFound:
		return http.StatusNotFound
	case store.InvalidRange:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func required(w http.ResponseWriter, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		writeError(w, http.StatusBadRequest, field+" is required")
		return false
	}
	return true
}

// respond writes the result together with the board it touched.
func (s *Server) respond(w http.ResponseWriter, boardID string, res store.Result, created bool) {
	resp := mutationResponse{Result: res}
	if board, ok := s.store.GetBoard(boardID); ok {
		resp.Board = board
	}
	writeJSON(w, statusFor(res, created), resp)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// search serves GET /api/search?q=&board=&closed=&limit=&field=.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := search.Options{
		Query:         q.Get("q"),
		BoardID:       q.Get("board"),
		IncludeClosed: q.Get("closed") == "true",
		Highlight:     q.Get("highlight") == "true",
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit "+limit)
			return
		}
		opts.MaxResults = n
	}
	for _, f := range q["field"] {
		opts.Fields = append(opts.Fields, search.Field(f))
	}

	results, err := search.NewEngine(s.store).Search(opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) listBoards(w http.ResponseWriter, r *http.Request) {
	var boards []*types.Board
	switch filter := r.URL.Query().Get("filter"); filter {
	case "", "open":
		boards = s.store.OpenBoards()
	case "starred":
		boards = s.store.StarredBoards()
	case "closed":
		boards = s.store.ClosedBoards()
	case "all":
		boards = s.store.Boards()
	default:
		writeError(w, http.StatusBadRequest, "unknown filter "+filter)
		return
	}
	if boards == nil {
		boards = []*types.Board{}
	}
	writeJSON(w, http.StatusOK, boards)
}

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	board, ok := s.store.GetBoard(mux.Vars(r)["board"])
	if !ok {
		writeError(w, http.StatusNotFound, "board not found")
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (s *Server) addBoard(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if !decode(w, r, &req) || !required(w, "title", req.Title) {
		return
	}
	res := s.store.AddBoard(strings.TrimSpace(req.Title), req.Background)
	s.respond(w, res.ID, res, true)
}

func (s *Server) removeBoard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["board"]
	s.respond(w, id, s.store.RemoveBoard(id), false)
}

func (s *Server) closeBoard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["board"]
	s.respond(w, id, s.store.CloseBoard(id), false)
}

func (s *Server) reopenBoard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["board"]
	s.respond(w, id, s.store.ReopenBoard(id), false)
}

func (s *Server) toggleStar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["board"]
	s.respond(w, id, s.store.ToggleStar(id), false)
}

func (s *Server) addList(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decode(w, r, &req) || !required(w, "title", req.Title) {
		return
	}
	id := mux.Vars(r)["board"]
	s.respond(w, id, s.store.AddList(id, strings.TrimSpace(req.Title)), true)
}

func (s *Server) removeList(w http.ResponseWriter, r *http.Request) {
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.RemoveList(v["board"], v["list"]), false)
}

func (s *Server) updateListTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decode(w, r, &req) || !required(w, "title", req.Title) {
		return
	}
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.UpdateListTitle(v["board"], v["list"], strings.TrimSpace(req.Title)), false)
}

func (s *Server) updateListBackground(w http.ResponseWriter, r *http.Request) {
	var req backgroundRequest
	if !decode(w, r, &req) {
		return
	}
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.UpdateListBackground(v["board"], v["list"], req.Background), false)
}

func (s *Server) moveList(w http.ResponseWriter, r *http.Request) {
	var req moveListRequest
	if !decode(w, r, &req) {
		return
	}
	id := mux.Vars(r)["board"]
	s.respond(w, id, s.store.MoveList(id, req.FromIndex, req.ToIndex), false)
}

func (s *Server) addCard(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decode(w, r, &req) || !required(w, "title", req.Title) {
		return
	}
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.AddCard(v["board"], v["list"], strings.TrimSpace(req.Title)), true)
}

func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
	v := mux.Vars(r)
	card, ok := s.store.FindCard(v["board"], v["list"], v["card"])
	if !ok {
		writeError(w, http.StatusNotFound, "card not found")
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) removeCard(w http.ResponseWriter, r *http.Request) {
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.RemoveCard(v["board"], v["list"], v["card"]), false)
}

func (s *Server) updateCardTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decode(w, r, &req) || !required(w, "title", req.Title) {
		return
	}
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.UpdateCardTitle(v["board"], v["list"], v["card"], strings.TrimSpace(req.Title)), false)
}

func (s *Server) updateCardDescription(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	if !decode(w, r, &req) {
		return
	}
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.UpdateCardDescription(v["board"], v["list"], v["card"], req.Description), false)
}

func (s *Server) toggleCardComplete(w http.ResponseWriter, r *http.Request) {
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.ToggleCardComplete(v["board"], v["list"], v["card"]), false)
}

func (s *Server) toggleCardWatching(w http.ResponseWriter, r *http.Request) {
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.ToggleCardWatching(v["board"], v["list"], v["card"]), false)
}

func (s *Server) moveCard(w http.ResponseWriter, r *http.Request) {
	var req moveCardRequest
	if !decode(w, r, &req) {
		return
	}
	id := mux.Vars(r)["board"]
	s.respond(w, id, s.store.MoveCard(id, req.FromListID, req.FromIndex, req.ToListID, req.ToIndex), false)
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !decode(w, r, &req) || !required(w, "content", req.Content) {
		return
	}
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.AddComment(v["board"], v["list"], v["card"], strings.TrimSpace(req.Content)), true)
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !decode(w, r, &req) || !required(w, "content", req.Content) {
		return
	}
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.UpdateComment(v["board"], v["list"], v["card"], v["comment"], strings.TrimSpace(req.Content)), false)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	v := mux.Vars(r)
	s.respond(w, v["board"], s.store.DeleteComment(v["board"], v["list"], v["card"], v["comment"]), false)
}

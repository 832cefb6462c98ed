// Package httpapi exposes the board engine over JSON/HTTP so a browser
// front end can drive it.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/arthur-debert/nanoboard/nanoboard/store"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const shutdownTimeout = 10 * time.Second

// Server serves the engine operations under /api.
type Server struct {
	store    *store.Store
	logger   *slog.Logger
	origins  []string
	gatherer prometheus.Gatherer
	router   *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOrigins sets the CORS allowed origins. Defaults to "*".
func WithOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// WithGatherer exposes the metrics of g at /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// New creates a server for st.
func New(st *store.Store, opts ...Option) *Server {
	s := &Server{
		store:   st,
		logger:  slog.Default(),
		origins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "httpapi")
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.logRequests)

	api.HandleFunc("/state", s.getState).Methods(http.MethodGet)
	api.HandleFunc("/search", s.search).Methods(http.MethodGet)

	api.HandleFunc("/boards", s.listBoards).Methods(http.MethodGet)
	api.HandleFunc("/boards", s.addBoard).Methods(http.MethodPost)
	api.HandleFunc("/boards/{board}", s.getBoard).Methods(http.MethodGet)
	api.HandleFunc("/boards/{board}", s.removeBoard).Methods(http.MethodDelete)
	api.HandleFunc("/boards/{board}/close", s.closeBoard).Methods(http.MethodPost)
	api.HandleFunc("/boards/{board}/reopen", s.reopenBoard).Methods(http.MethodPost)
	api.HandleFunc("/boards/{board}/star", s.toggleStar).Methods(http.MethodPost)

	api.HandleFunc("/boards/{board}/lists", s.addList).Methods(http.MethodPost)
	api.HandleFunc("/boards/{board}/lists/move", s.moveList).Methods(http.MethodPost)
	api.HandleFunc("/boards/{board}/lists/{list}", s.removeList).Methods(http.MethodDelete)
	api.HandleFunc("/boards/{board}/lists/{list}/title", s.updateListTitle).Methods(http.MethodPut)
	api.HandleFunc("/boards/{board}/lists/{list}/background", s.updateListBackground).Methods(http.MethodPut)

	api.HandleFunc("/boards/{board}/cards/move", s.moveCard).Methods(http.MethodPost)
	api.HandleFunc("/boards/{board}/lists/{list}/cards", s.addCard).Methods(http.MethodPost)
	api.HandleFunc("/boards/{board}/lists/{list}/cards/{card}", s.getCard).Methods(http.MethodGet)
	api.HandleFunc("/boards/{board}/lists/{list}/cards/{card}", s.removeCard).Methods(http.MethodDelete)
	api.HandleFunc("/boards/{board}/lists/{list}/cards/{card}/title", s.updateCardTitle).Methods(http.MethodPut)
	api.HandleFunc("/boards/{board}/lists/{list}/cards/{card}/description", s.updateCardDescription).Methods(http.MethodPut)
	api.HandleFunc("/boards/{board}/lists/{list}/cards/{card}/complete", s.toggleCardComplete).Methods(http.MethodPost)
	api.HandleFunc("/boards/{board}/lists/{list}/cards/{card}/watch", s.toggleCardWatching).Methods(http.MethodPost)

	api.HandleFunc("/boards/{board}/lists/{list}/cards/{card}/comments", s.addComment).Methods(http.MethodPost)
	api.HandleFunc("/boards/{board}/lists/{list}/cards/{card}/comments/{comment}", s.updateComment).Methods(http.MethodPut)
	api.HandleFunc("/boards/{board}/lists/{list}/cards/{card}/comments/{comment}", s.deleteComment).Methods(http.MethodDelete)
	return r
}

// Handler returns the router wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", ln.Addr().String())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

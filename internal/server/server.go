package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vk/lifegrid/internal/board"
	"github.com/vk/lifegrid/internal/config"
)

// Broadcaster receives every board snapshot committed through the API. The
// live feed hub implements it; a nil Broadcaster disables the feed.
type Broadcaster interface {
	Broadcast(snap board.Snapshot)
}

// Options carries the collaborators a Server needs.
type Options struct {
	Board     *board.Board
	Patterns  map[string]config.Pattern
	StaticDir string
	Logger    *slog.Logger

	// Feed receives committed snapshots; FeedHandler, when set, is mounted
	// at /socket.io/.
	Feed        Broadcaster
	FeedHandler http.Handler
}

// Server routes HTTP requests to the board engine.
type Server struct {
	board    *board.Board
	patterns map[string]config.Pattern
	logger   *slog.Logger
	feed     Broadcaster
	stats    *Stats
	mux      *http.ServeMux
}

// New constructs the server and registers all routes.
func New(opts Options) *Server {
	s := &Server{
		board:    opts.Board,
		patterns: opts.Patterns,
		logger:   opts.Logger,
		feed:     opts.Feed,
		stats:    &Stats{},
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/board", s.method(http.MethodGet, s.handleGetBoard))
	s.mux.HandleFunc("/api/randomize", s.method(http.MethodPost, s.handleRandomize))
	s.mux.HandleFunc("/api/update", s.method(http.MethodPost, s.handleUpdate))
	s.mux.HandleFunc("/api/change_size", s.method(http.MethodPost, s.handleChangeSize))
	s.mux.HandleFunc("/api/customize", s.method(http.MethodPost, s.handleCustomize))
	s.mux.HandleFunc("/api/clear", s.method(http.MethodPost, s.handleClear))
	s.mux.HandleFunc("/api/fill", s.method(http.MethodPost, s.handleFill))
	s.mux.HandleFunc("/api/set_p_live", s.method(http.MethodPost, s.handleSetPLive))
	s.mux.HandleFunc("/api/pattern", s.method(http.MethodPost, s.handlePattern))
	s.mux.HandleFunc("/api/stats", s.method(http.MethodGet, s.handleStats))
	s.mux.HandleFunc("/health", s.handleHealth)

	// Unknown API paths get a JSON 404 instead of the SPA fallback.
	s.mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	if opts.FeedHandler != nil {
		s.mux.Handle("/socket.io/", opts.FeedHandler)
	}

	s.mux.Handle("/", newSPAHandler(opts.StaticDir))

	return s
}

// Handler returns the full middleware-wrapped handler chain.
func (s *Server) Handler() http.Handler {
	return recoverPanics(s.logger, corsHeaders(requestLogger(s.logger, s.mux)))
}

// Stats exposes the request counters, primarily for tests.
func (s *Server) Stats() *Stats {
	return s.stats
}

// method rejects every verb but the expected one with a JSON 405.
func (s *Server) method(want string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != want {
			w.Header().Set("Allow", want)
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

// broadcast forwards a committed snapshot to the feed, if one is attached.
func (s *Server) broadcast(snap board.Snapshot) {
	if s.feed != nil {
		s.feed.Broadcast(snap)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/vk/lifegrid/internal/board"
	"github.com/vk/lifegrid/internal/ctxlog"
)

// boardPayload is the wire shape shared by every route that returns the full
// board state.
type boardPayload struct {
	Board   board.Grid `json:"board"`
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	PLive   float64    `json:"p_live"`
}

func toPayload(snap board.Snapshot) boardPayload {
	return boardPayload{
		Board:   snap.Cells,
		Rows:    snap.Rows,
		Columns: snap.Columns,
		PLive:   snap.LiveProbability,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(r.Context()).Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toPayload(s.board.Snapshot()))
}

func (s *Server) handleRandomize(w http.ResponseWriter, r *http.Request) {
	// The body is optional: {"p_live": 0.3} overrides the stored
	// probability for this and subsequent randomizations.
	p := s.board.Snapshot().LiveProbability
	if r.ContentLength != 0 {
		var req struct {
			PLive *float64 `json:"p_live"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.PLive != nil {
			p = *req.PLive
		}
	}

	if err := s.board.Randomize(p); err != nil {
		if errors.Is(err, board.ErrZeroProbability) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ctxlog.FromContext(r.Context()).Error("Randomize failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.stats.Randomizes.Add(1)
	snap := s.board.Snapshot()
	s.broadcast(snap)
	writeJSON(w, http.StatusOK, toPayload(snap))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	static := s.board.Advance()
	s.stats.Generations.Add(1)
	snap := s.board.Snapshot()
	ctxlog.FromContext(r.Context()).Debug("Advanced one generation.",
		"generation", s.stats.Generations.Load(), "static", static)

	s.broadcast(snap)
	writeJSON(w, http.StatusOK, map[string]any{
		"board":    snap.Cells,
		"isStatic": static,
	})
}

func (s *Server) handleChangeSize(w http.ResponseWriter, r *http.Request) {
	// Dimensions arrive as JSON numbers; a fractional value is an invalid
	// dimension, not a silent truncation. Missing fields keep the current
	// value.
	var req struct {
		Rows    *float64 `json:"rows"`
		Columns *float64 `json:"columns"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	snap := s.board.Snapshot()
	rows, ok := intDimension(req.Rows, snap.Rows)
	if !ok {
		writeError(w, http.StatusBadRequest, board.ErrInvalidDimension.Error())
		return
	}
	columns, ok := intDimension(req.Columns, snap.Columns)
	if !ok {
		writeError(w, http.StatusBadRequest, board.ErrInvalidDimension.Error())
		return
	}

	if err := s.board.Resize(rows, columns); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.stats.Resizes.Add(1)
	snap = s.board.Snapshot()
	s.broadcast(snap)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Board size changed to %d rows x %d columns.", snap.Rows, snap.Columns),
		"rows":    snap.Rows,
		"columns": snap.Columns,
		"board":   snap.Cells,
	})
}

// intDimension validates that an optional JSON number is a whole value and
// returns it, falling back to current when absent.
func intDimension(v *float64, current int) (int, bool) {
	if v == nil {
		return current, true
	}
	if *v != math.Trunc(*v) {
		return 0, false
	}
	return int(*v), true
}

func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Board board.Grid `json:"board"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.board.SetCells(req.Board); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.stats.Customizes.Add(1)
	snap := s.board.Snapshot()
	s.broadcast(snap)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Board customized successfully",
		"board":   snap.Cells,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.board.Reset()
	s.stats.Resets.Add(1)
	snap := s.board.Snapshot()
	s.broadcast(snap)
	writeJSON(w, http.StatusOK, toPayload(snap))
}

func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	s.board.Fill()
	s.stats.Fills.Add(1)
	snap := s.board.Snapshot()
	s.broadcast(snap)
	writeJSON(w, http.StatusOK, toPayload(snap))
}

func (s *Server) handleSetPLive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PLive *float64 `json:"p_live"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.PLive == nil {
		writeError(w, http.StatusBadRequest, "missing required field: p_live")
		return
	}

	s.board.SetLiveProbability(*req.PLive)
	snap := s.board.Snapshot()
	s.broadcast(snap)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Live probability set to %g.", snap.LiveProbability),
		"p_live":  snap.LiveProbability,
	})
}

func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing required field: name")
		return
	}

	pattern, ok := s.patterns[req.Name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown pattern %q", req.Name))
		return
	}

	snap := s.board.Snapshot()
	grid := make(board.Grid, snap.Rows)
	for i := range grid {
		grid[i] = make([]board.Cell, snap.Columns)
	}
	for _, rc := range pattern.Cells {
		if rc[0] < 0 || rc[1] < 0 || rc[0] >= snap.Rows || rc[1] >= snap.Columns {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("pattern %q does not fit a %dx%d board", req.Name, snap.Rows, snap.Columns))
			return
		}
		grid[rc[0]][rc[1]] = board.Alive
	}

	if err := s.board.SetCells(grid); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.stats.Customizes.Add(1)
	snap = s.board.Snapshot()
	s.broadcast(snap)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Pattern %q applied.", req.Name),
		"board":   snap.Cells,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

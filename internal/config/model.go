package config

import (
	"context"
	"fmt"
)

// Model is the complete, merged configuration the application runs with.
type Model struct {
	Server   Server
	Board    Board
	Log      Log
	Patterns map[string]Pattern
}

// Server configures the HTTP listener and the bundled frontend.
type Server struct {
	Port      int
	StaticDir string
}

// Board configures the initial grid and its hard limits.
type Board struct {
	Rows            int
	Columns         int
	MaxRows         int
	MaxColumns      int
	LiveProbability float64
}

// Log configures the slog handler.
type Log struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// Pattern is a named seed shape: a list of (row, column) cells to set alive
// on an otherwise empty grid.
type Pattern struct {
	Name  string
	Cells [][2]int
}

// Loader loads a Model from some concrete on-disk format. The path may name
// a single file or a directory of files; an empty path means defaults only.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}

// Default returns the configuration used when no file and no flags are
// provided: an 8×8 board capped at 50×50, even-odds sampling, plain text
// logs, port 8080, and the built-in pattern library.
func Default() *Model {
	return &Model{
		Server: Server{
			Port:      8080,
			StaticDir: "frontend/build",
		},
		Board: Board{
			Rows:            8,
			Columns:         8,
			MaxRows:         50,
			MaxColumns:      50,
			LiveProbability: 0.5,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Patterns: BuiltinPatterns(),
	}
}

// Validate checks the model for internally inconsistent or out-of-range
// values. It returns the first problem found.
func (m *Model) Validate() error {
	if m.Server.Port <= 0 || m.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", m.Server.Port)
	}
	if m.Board.MaxRows <= 0 || m.Board.MaxColumns <= 0 {
		return fmt.Errorf("board maxima must be positive, got %dx%d", m.Board.MaxRows, m.Board.MaxColumns)
	}
	if m.Board.Rows <= 0 || m.Board.Columns <= 0 {
		return fmt.Errorf("board.rows and board.columns must be positive, got %dx%d", m.Board.Rows, m.Board.Columns)
	}
	if m.Board.Rows > m.Board.MaxRows || m.Board.Columns > m.Board.MaxColumns {
		return fmt.Errorf("board %dx%d exceeds configured maximum %dx%d",
			m.Board.Rows, m.Board.Columns, m.Board.MaxRows, m.Board.MaxColumns)
	}
	if m.Board.LiveProbability < 0 || m.Board.LiveProbability > 1 {
		return fmt.Errorf("board.p_live must be in [0, 1], got %g", m.Board.LiveProbability)
	}

	switch m.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", m.Log.Level)
	}
	switch m.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", m.Log.Format)
	}

	for name, p := range m.Patterns {
		for _, rc := range p.Cells {
			if rc[0] < 0 || rc[1] < 0 {
				return fmt.Errorf("pattern %q has a negative cell coordinate %v", name, rc)
			}
			if rc[0] >= m.Board.MaxRows || rc[1] >= m.Board.MaxColumns {
				return fmt.Errorf("pattern %q cell %v can never fit a board capped at %dx%d",
					name, rc, m.Board.MaxRows, m.Board.MaxColumns)
			}
		}
	}

	return nil
}

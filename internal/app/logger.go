package app

import (
	"io"
	"log/slog"

	"github.com/vk/lifegrid/internal/config"
)

// newLogger builds the application's slog.Logger from the merged log
// config. It never sets the global logger, so tests can run isolated
// instances. An unparseable level falls back to info; the level strings are
// validated earlier by config.Validate anyway.
func newLogger(cfg config.Log, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vk/lifegrid/internal/board"
	"github.com/vk/lifegrid/internal/config"
	"github.com/vk/lifegrid/internal/ctxlog"
	"github.com/vk/lifegrid/internal/feed"
	"github.com/vk/lifegrid/internal/server"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *config.Model
	board  *board.Board
	hub    *feed.Hub

	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the config
// through the provided loader, applies the CLI overrides, and builds every
// component up to an HTTP server that is ready to listen.
func NewApp(outW io.Writer, opts *Options, loader config.Loader) (*App, error) {
	// Bootstrap logger until the configured one exists.
	bootCtx := ctxlog.WithLogger(context.Background(), slog.Default())

	cfg, err := loader.Load(bootCtx, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.Log, outW)
	logger.Debug("Logger configured successfully.")

	b, err := board.New(board.Config{
		Rows:            cfg.Board.Rows,
		Columns:         cfg.Board.Columns,
		MaxRows:         cfg.Board.MaxRows,
		MaxColumns:      cfg.Board.MaxColumns,
		LiveProbability: cfg.Board.LiveProbability,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	logger.Debug("Board created.", "rows", cfg.Board.Rows, "columns", cfg.Board.Columns)

	hub := feed.NewHub(logger)

	srv := server.New(server.Options{
		Board:       b,
		Patterns:    cfg.Patterns,
		StaticDir:   cfg.Server.StaticDir,
		Logger:      logger,
		Feed:        hub,
		FeedHandler: hub.Handler(),
	})

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		board:  b,
		hub:    hub,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: srv.Handler(),
		},
	}, nil
}

// applyOverrides copies every flag the user actually set over the file
// values.
func applyOverrides(cfg *config.Model, opts *Options) {
	if opts.Port != nil {
		cfg.Server.Port = *opts.Port
	}
	if opts.StaticDir != nil {
		cfg.Server.StaticDir = *opts.StaticDir
	}
	if opts.LogLevel != nil {
		cfg.Log.Level = *opts.LogLevel
	}
	if opts.LogFormat != nil {
		cfg.Log.Format = *opts.LogFormat
	}
}

// Config returns the merged configuration. This is primarily for testing.
func (a *App) Config() *config.Model {
	return a.config
}

// Board returns the engine instance. This is primarily for testing.
func (a *App) Board() *board.Board {
	return a.board
}

// Run starts the HTTP server and blocks until the context is canceled or
// the listener fails. Shutdown is graceful with a five second deadline.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.httpServer.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("🧬 lifegrid server starting",
			"address", fmt.Sprintf("http://localhost%s", a.httpServer.Addr),
			"board", fmt.Sprintf("%dx%d", a.config.Board.Rows, a.config.Board.Columns))
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.hub.Close()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server shutdown failed", "error", err)
		return err
	}

	a.logger.Debug("Server shut down gracefully.")
	return nil
}

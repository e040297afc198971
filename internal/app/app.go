// Package app assembles the process: logging router, hub, tick loop, and the
// HTTP server, plus the graceful shutdown ordering between them.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	server "tipdex/server"
	"tipdex/server/internal/catalog"
	nethttp "tipdex/server/internal/net"
	"tipdex/server/internal/telemetry"
	"tipdex/server/logging"
	"tipdex/server/logging/sinks"
)

// Config carries process-level settings.
type Config struct {
	Addr      string
	ClientDir string
	TickRate  int
	Logging   logging.Config
}

// DefaultConfig reads environment overrides on top of the built-in defaults.
func DefaultConfig() Config {
	cfg := Config{
		Addr:      ":8080",
		ClientDir: "client",
		TickRate:  server.TickRate(),
		Logging:   logging.DefaultConfig(),
	}
	if addr := os.Getenv("TIPDEX_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if dir := os.Getenv("TIPDEX_CLIENT_DIR"); dir != "" {
		cfg.ClientDir = dir
	}
	if raw := os.Getenv("ARCADE_TICK_RATE"); raw != "" {
		if rate, err := strconv.Atoi(raw); err == nil && rate > 0 {
			cfg.TickRate = rate
		}
	}
	if path := os.Getenv("TIPDEX_LOG_JSON"); path != "" {
		cfg.Logging.JSON.FilePath = path
		cfg.Logging.EnabledSinks = append(cfg.Logging.EnabledSinks, "json")
	}
	return cfg
}

// Run boots the service and blocks until the context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	router, closeSinks, err := buildRouter(cfg.Logging)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.Close(shutdownCtx); err != nil {
			logger.Printf("logging router close: %v", err)
		}
		closeSinks()
	}()

	metrics := logging.NewMetrics()
	ledger := catalog.NewLedger()
	store := catalog.NewStore()

	hub := server.NewHub(server.HubConfig{
		TickRate: cfg.TickRate,
		Logger:   telemetry.WrapLogger(logger),
	}, server.HubDeps{
		Publisher: router,
		Metrics:   metrics,
		Ledger:    ledger,
	})

	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	handler := nethttp.NewHTTPHandler(hub, nethttp.HTTPHandlerConfig{
		ClientDir: cfg.ClientDir,
		Logger:    logger,
		Store:     store,
		Ledger:    ledger,
		Publisher: router,
	})

	httpServer := &http.Server{Addr: cfg.Addr, Handler: handler}
	serveErr := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s (tick rate %d)", cfg.Addr, cfg.TickRate)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// buildRouter constructs the event router with the configured sinks. The
// returned cleanup closes any files the sinks write to.
func buildRouter(cfg logging.Config) (*logging.Router, func(), error) {
	var named []logging.NamedSink
	cleanup := func() {}

	if cfg.HasSink("console") {
		named = append(named, logging.NamedSink{
			Name: "console",
			Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console),
		})
	}
	if cfg.HasSink("json") && cfg.JSON.FilePath != "" {
		file, err := os.OpenFile(cfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open json log %s: %w", cfg.JSON.FilePath, err)
		}
		named = append(named, logging.NamedSink{
			Name: "json",
			Sink: sinks.NewJSON(file, cfg.JSON.FlushInterval),
		})
		cleanup = func() { file.Close() }
	}

	router, err := logging.NewRouter(logging.SystemClock{}, cfg, named)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return router, cleanup, nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httphandler "github.com/ericfisherdev/salahtracker/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/salahtracker/internal/adapter/driving/web"
	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/bootstrap"
	"github.com/ericfisherdev/salahtracker/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration; a .env file in the working directory is optional.
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := bootstrap.NewLogger(os.Stderr, cfg.LogLevel)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"store", cfg.Store,
		"timezone", cfg.Location.String(),
		"summary_days", cfg.SummaryDays,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the history store (SQLite runs migrations here).
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.Error("error closing store", "error", closeErr)
		}
	}()

	// 4. Create the tracker service.
	svc := application.NewTrackerService(store, cfg.Location, time.Now, logger)

	// 5. Register API, metrics, and GUI routes on one mux with middleware.
	gui := webhandler.NewHandler(svc, cfg.SummaryDays, logger)
	handler := httphandler.NewServeMux(
		httphandler.NewHandler(svc, cfg.SummaryDays, logger),
		logger,
		httphandler.NewMetrics(svc),
		func(mux *http.ServeMux) { webhandler.RegisterRoutes(mux, gui) },
	)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	logger.Info("salahtracker started", "listen_addr", cfg.ListenAddr, "today", svc.TodayKey())

	// 6. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}
	logger.Info("shutting down")

	// 7. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

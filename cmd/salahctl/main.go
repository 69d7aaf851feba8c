package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/bootstrap"
	"github.com/ericfisherdev/salahtracker/internal/cli"
	"github.com/ericfisherdev/salahtracker/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(openService)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openService loads the same configuration as the server and opens its store.
// Logs go to stderr at warning level or above so command output stays clean.
func openService(ctx context.Context) (*application.TrackerService, func() error, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	logger := bootstrap.NewLogger(os.Stderr, level)
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return application.NewTrackerService(store, cfg.Location, time.Now, logger), closeStore, nil
}

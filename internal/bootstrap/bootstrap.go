// Package bootstrap wires configuration to concrete adapters for the
// salahtracker and salahctl binaries.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ericfisherdev/salahtracker/internal/adapter/driven/jsonfile"
	sqliteadapter "github.com/ericfisherdev/salahtracker/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/salahtracker/internal/config"
	"github.com/ericfisherdev/salahtracker/internal/domain/port/driven"
)

// NewLogger returns a text logger writing to w at the given level and
// installs it as the slog default.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// OpenStore opens the history store selected by cfg.Store. For SQLite the
// schema is migrated before the store is returned. The returned close
// function releases the store and is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.HistoryStore, func() error, error) {
	switch cfg.Store {
	case config.StoreFile:
		store := jsonfile.NewHistoryFile(cfg.DataFile)
		logger.Info("using json file store", "path", store.Path())
		return store, func() error { return nil }, nil

	case config.StoreSQLite:
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database opened", "path", db.Path())

		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
			return nil, nil, err
		}
		logger.Info("migrations complete", "version", version)

		return sqliteadapter.NewHistoryRepo(db), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// Package backend selects and constructs the persistence store.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/coinop-logan/personal-finance-display/internal/config"
	"github.com/coinop-logan/personal-finance-display/internal/store"
)

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result holds the constructed store and an optional cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// New builds the store named by cfg.DataBackend.
func New(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DataBackend {
	case "json":
		logger.Info("Initialized JSON file backend", "data_file", cfg.DataFile)
		return &Result{Store: store.NewJSONStore(cfg.DataFile)}, nil

	case "sqlite":
		repo, err := store.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}

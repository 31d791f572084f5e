package bootstrap

import (
	"fmt"
	"time"

	"subcontrol-be/internal/config"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/repository/memory"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/database"

	"github.com/spf13/afero"
)

// OpenStore builds the repository factory for the configured backend.
// The returned close func releases the database pool when there is one.
func OpenStore(cfg *config.Config, log logger.ILogger) (unitofwork.RepositoryFactory, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.StoreMemory:
		store, err := memory.NewStore(nil)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Seed(DemoState(time.Now())); err != nil {
			return nil, nil, err
		}
		log.Warn("STORE", "Using in-memory store with demo data, changes are lost on exit", nil)
		return memory.NewRepositoryFactory(store), noop, nil

	case config.StoreFile:
		store, err := memory.NewStore(memory.NewFilePersister(afero.NewOsFs(), cfg.Store.FilePath))
		if err != nil {
			return nil, nil, fmt.Errorf("open store file %s: %w", cfg.Store.FilePath, err)
		}
		log.Info("STORE", "Using file store", map[string]interface{}{"path": cfg.Store.FilePath})
		return memory.NewRepositoryFactory(store), noop, nil

	case config.StorePostgres:
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Verbose)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		log.Info("STORE", "Using postgres store", nil)
		return unitofwork.NewRepositoryFactory(db), sqlDB.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

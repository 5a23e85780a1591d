package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/memoflow/memoflow/internal/config"
	storepkg "github.com/memoflow/memoflow/internal/store"
	storepg "github.com/memoflow/memoflow/internal/store/postgres"
	storesq "github.com/memoflow/memoflow/internal/store/sqlite"
)

// NewStore returns a store.Store for the configured driver.
// Launches an async bootstrap check for Postgres; returns the store
// immediately for fast startup.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := storesq.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return storesq.NewWithDB(db), nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("MEMO_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		go func() {
			bootstrapCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := storepg.Bootstrap(bootstrapCtx, cfg.PostgresDSN); err != nil {
				log.Warn().Err(err).Str("driver", cfg.DBDriver).Msg("store bootstrap check failed")
			}
		}()
		return storepg.NewWithDB(db), nil
	}
	return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
}

package root

import (
	"context"
	"database/sql"

	"habitflow/internal/config"
	"habitflow/internal/engine"
	"habitflow/internal/storage"
)

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg := config.Load()
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	rewards := engine.DefaultRewardConfig()
	if cfg.DailyClearBonus >= 0 {
		rewards.DailyClearBonus = cfg.DailyClearBonus
	}
	if err := rewards.Validate(); err != nil {
		cleanup()
		return nil, nil, err
	}
	svc := engine.NewService(db,
		engine.WithRewardConfig(rewards),
		engine.WithDefaultTimezone(cfg.DefaultTimezone),
	)
	return svc, cleanup, nil
}

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jask/skillbuilder/internal/config"
	"github.com/jask/skillbuilder/internal/database"
	"github.com/jask/skillbuilder/internal/database/redisstore"
	"github.com/jask/skillbuilder/internal/database/repository"
	"github.com/jask/skillbuilder/internal/logger"
	"github.com/jask/skillbuilder/internal/prefs"
	"github.com/jask/skillbuilder/internal/progress"
)

// openStore returns the configured backend. A backend that cannot be opened
// degrades to an unavailable store: the lesson still works, nothing is kept.
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (progress.Store, func()) {
	store, closer, err := dialStore(ctx, cfg)
	if err != nil {
		log.Warn("progress store unavailable, continuing without persistence", "backend", cfg.Store.Backend, "error", err)
		return progress.UnavailableStore{}, func() {}
	}
	log.Debug("progress store open", "backend", cfg.Store.Backend)
	return store, closer
}

func dialStore(ctx context.Context, cfg config.Config) (progress.Store, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := database.OpenMigrated(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewProgressRepo(db), func() { _ = db.Close() }, nil
	case config.BackendRedis:
		s, err := redisstore.Open(ctx, cfg.Store.RedisAddr, cfg.Store.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.BackendFile:
		path := cfg.Store.Path
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			def, err := prefs.DefaultPath()
			if err != nil {
				return nil, nil, err
			}
			path = def
		}
		s, err := prefs.OpenFile(path)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case config.BackendMemory:
		return progress.NewMemoryStore(), noop, nil
	case config.BackendNone:
		return progress.UnavailableStore{}, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Store.Backend)
	}
}

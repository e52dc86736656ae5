package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/wiktwords/internal/cache"
	"github.com/at-ishikawa/wiktwords/internal/config"
	"github.com/at-ishikawa/wiktwords/internal/database"
)

const downloadFlag = "download"

// loadConfig loads the configuration; a --download flag in flags
// overrides definitions.download.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	if flag := flags.Lookup(downloadFlag); flag != nil {
		if err := loader.Viper().BindPFlag("definitions.download", flag); err != nil {
			return nil, fmt.Errorf("failed to bind --%s flag: %w", downloadFlag, err)
		}
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openStore returns the cache store selected by the configuration and a
// function releasing it.
func openStore(ctx context.Context, cfg config.CacheConfig, dbCfg config.DatabaseConfig) (cache.Store, func() error, error) {
	switch cfg.Backend {
	case config.CacheBackendSQLite, config.CacheBackendMySQL:
		db, err := openDatabase(cfg, dbCfg)
		if err != nil {
			return nil, nil, err
		}
		store := cache.NewDBStore(db)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("store.Migrate > %w", err)
		}
		return store, db.Close, nil
	case config.CacheBackendFile:
		fallthrough
	default:
		return cache.NewFileStore(cfg.Directory), func() error { return nil }, nil
	}
}

func openDatabase(cfg config.CacheConfig, dbCfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.Backend == config.CacheBackendMySQL {
		db, err := database.OpenMySQL(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("database.OpenMySQL > %w", err)
		}
		return db, nil
	}
	db, err := database.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("database.OpenSQLite > %w", err)
	}
	return db, nil
}

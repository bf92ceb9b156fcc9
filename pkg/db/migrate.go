package db

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/jtbakery/storefront-backend/pkg/config"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// DefaultMigrationsDir is where goose SQL migrations live relative to the repo root.
const DefaultMigrationsDir = "migrations"

// MaybeMigrate runs goose migrations when the auto-migrate flag is set.
// Production deploys run migrations as a release step instead.
func MaybeMigrate(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *Client) error {
	if !cfg.App.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultMigrationsDir})
	logg.Info(ctx, "running goose migrations")

	if err := goose.UpContext(ctx, sqlDB, DefaultMigrationsDir); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}

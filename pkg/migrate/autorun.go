package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/museum-cart/pkg/config"
	"github.com/angelmondragon/museum-cart/pkg/db"
	"github.com/angelmondragon/museum-cart/pkg/logger"
)

// MaybeRunDev applies the catalog migrations when running in dev with the
// auto-migrate flag on.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	scripts, err := Embedded()
	if err != nil {
		return fmt.Errorf("embedded migrations: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"driver":         client.Driver(),
		"target_version": Latest(scripts),
	})
	logg.Info(ctx, "running goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, client.Driver(), "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}

package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// MaybeRun brings the storage_entries schema up to date at boot. It is a
// no-op unless sql storage and STOREFRONT_STORAGE_AUTO_MIGRATE are both set.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg.Storage.DriverKind() != enums.StorageDriverSQL || !cfg.Storage.AutoMigrate {
		return nil
	}
	if err := ValidateEmbedded(); err != nil {
		return err
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	ctx = logg.WithField(ctx, "dialect", client.Dialect())
	if err := Run(ctx, sqlDB, client.Dialect(), "up"); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	version, err := Version(ctx, sqlDB, client.Dialect())
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	logg.Info(logg.WithField(ctx, "schema_version", version), "storage schema up to date")
	return nil
}

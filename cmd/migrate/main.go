// Command migrate manages the storage_entries schema used by sql visitor
// storage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/migrate"
)

const serviceName = "storefront-migrate"

type flags struct {
	cmd     string
	dir     string
	name    string
	version string
}

func main() {
	_ = godotenv.Load()

	var f flags
	flag.StringVar(&f.cmd, "cmd", "up", "up|down|status|current|version|create|validate")
	flag.StringVar(&f.dir, "dir", migrate.DefaultDir, "on-disk migrations for create and validate; database commands use the embedded set")
	flag.StringVar(&f.name, "name", "", "migration name for -cmd=create")
	flag.StringVar(&f.version, "version", "", "target YYYYMMDDHHMMSS for -cmd=version")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", f.cmd, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	switch f.cmd {
	case "create":
		if f.name == "" {
			return errors.New("-name is required")
		}
		path, err := migrate.CreateSQLMigration(f.dir, f.name, time.Now())
		if err != nil {
			return err
		}
		fmt.Println("created", path)
		return nil
	case "validate":
		if f.dir == migrate.DefaultDir {
			if err := migrate.ValidateEmbedded(); err != nil {
				return err
			}
		} else if err := migrate.ValidateDir(f.dir); err != nil {
			return err
		}
		fmt.Println("migrations ok")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
		Fields:      map[string]any{"env": cfg.App.Env},
	})
	ctx = logg.WithFields(ctx, map[string]any{"cmd": f.cmd, "driver": cfg.DB.Driver})

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer client.Close()

	sqlDB, err := client.SQL()
	if err != nil {
		return err
	}
	dialect := client.Dialect()

	switch f.cmd {
	case "up", "down", "status":
		err = migrate.Run(ctx, sqlDB, dialect, f.cmd)
	case "current":
		var v int64
		if v, err = migrate.Version(ctx, sqlDB, dialect); err == nil {
			fmt.Println(v)
		}
	case "version":
		if f.version == "" {
			return errors.New("-version is required")
		}
		err = migrate.MigrateToVersion(ctx, sqlDB, dialect, f.version)
	default:
		return fmt.Errorf("unknown command %q", f.cmd)
	}
	if err != nil {
		logg.Error(ctx, "migration failed", err)
		return err
	}
	logg.Info(ctx, "migration finished")
	return nil
}

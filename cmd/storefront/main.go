package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/routes"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/migrate"
	"github.com/angelmondragon/storefront/pkg/redis"
	"github.com/angelmondragon/storefront/pkg/storage"
)

const serviceName = "storefront"

type closer func() error

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
		Fields:      map[string]any{"env": cfg.App.Env},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, pinger, closers, err := openStorage(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeAll(closers); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	loader := catalog.NewLoader(
		catalog.NewClient(cfg.Catalog),
		logg,
		catalog.WithMetrics(metrics.NewCatalogMetrics(reg)),
	)

	builder, err := storefront.NewBuilder(storefront.Deps{
		Config:      cfg,
		Logger:      logg,
		Storage:     store,
		Loader:      loader,
		CartMetrics: metrics.NewCartMetrics(reg),
	})
	if err != nil {
		logg.Error(ctx, "failed to build storefront", err)
		os.Exit(1)
	}

	addr := ":" + cfg.App.Port
	ctx = logg.WithFields(ctx, map[string]any{
		"addr":    addr,
		"storage": string(cfg.Storage.DriverKind()),
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:      cfg,
			Logger:      logg,
			Builder:     builder,
			HTTPMetrics: metrics.NewHTTPMetrics(reg),
			Gatherer:    reg,
			Pingers:     map[string]controllers.Pinger{"storage": pinger},
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "storefront server stopped unexpectedly", err)
			stop()
			return
		}
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutting down storefront server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}

// openStorage selects the visitor storage backend from config.
func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Store, controllers.Pinger, []closer, error) {
	switch cfg.Storage.DriverKind() {
	case enums.StorageDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, nil, nil, err
		}
		store, err := storage.NewRedisStore(client, cfg.Session.TTL)
		if err != nil {
			return nil, nil, []closer{client.Close}, err
		}
		return store, store, []closer{client.Close}, nil

	case enums.StorageDriverSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, nil, nil, err
		}
		closers := []closer{client.Close}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return nil, nil, closers, err
		}
		store, err := storage.NewSQLStore(client.DB())
		if err != nil {
			return nil, nil, closers, err
		}
		return store, store, closers, nil

	default:
		store := storage.NewMemoryStore()
		return store, store, nil, nil
	}
}

func closeAll(closers []closer) error {
	var err error
	for _, c := range closers {
		err = multierr.Append(err, c())
	}
	return err
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/enums"
)

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Catalog.URL != "https://fakestoreapi.com/products" {
		t.Fatalf("unexpected catalog url %q", cfg.Catalog.URL)
	}
	if cfg.Catalog.PageSize != 6 {
		t.Fatalf("expected page size 6, got %d", cfg.Catalog.PageSize)
	}
	if cfg.Catalog.Timeout != 0 {
		t.Fatalf("expected no catalog timeout, got %v", cfg.Catalog.Timeout)
	}
	if !cfg.Cart.Shipping().Equal(decimal.RequireFromString("2")) {
		t.Fatalf("expected shipping 2.00, got %s", cfg.Cart.Shipping())
	}
	if cfg.Notify.DismissAfter != 2*time.Second || cfg.Notify.FadeFor != 300*time.Millisecond {
		t.Fatalf("unexpected notify timings %+v", cfg.Notify)
	}
	if cfg.Storage.DriverKind() != enums.StorageDriverMemory {
		t.Fatalf("expected memory storage, got %s", cfg.Storage.DriverKind())
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvSessionSecret); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvSessionSecret, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing session secret to return an error")
	}
}

func TestLoad_RedisDriverRequiresAddress(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStorageDriver, "redis")

	if _, err := Load(); err == nil {
		t.Fatal("expected redis storage without url to fail")
	}

	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.DriverKind() != enums.StorageDriverRedis {
		t.Fatalf("expected redis driver, got %s", cfg.Storage.DriverKind())
	}
}

func TestLoad_SQLDriverRequiresDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStorageDriver, "sql")

	if _, err := Load(); err == nil {
		t.Fatal("expected sql storage without dsn to fail")
	}

	t.Setenv(EnvDBDSN, "file::memory:?cache=shared")
	t.Setenv(EnvDBDriver, "sqlite")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.DB.IsSQLite() {
		t.Fatalf("expected sqlite dialect")
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		EnvCatalogPageSize: "0",
		EnvCartShippingFee: "two dollars",
		EnvStorageDriver:   "dynamo",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setMinimalEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected %s=%q to be rejected", key, value)
			}
		})
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvSessionSecret, "secret")
	t.Setenv(EnvStorageDriver, "memory")
	t.Setenv(EnvCatalogPageSize, "6")
	t.Setenv(EnvCartShippingFee, "2.00")
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvRedisAddr, "")
	t.Setenv(EnvDBDSN, "")
	t.Setenv(EnvDBDriver, "postgres")
}

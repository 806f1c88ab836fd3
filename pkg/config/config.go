package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/enums"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Cart    CartConfig
	Notify  NotifyConfig
	Session SessionConfig
	Storage StorageConfig
	Redis   RedisConfig
	DB      DBConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`

	CORSOrigins     []string      `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"STOREFRONT_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	URL      string        `envconfig:"STOREFRONT_CATALOG_URL" default:"https://fakestoreapi.com/products"`
	PageSize int           `envconfig:"STOREFRONT_CATALOG_PAGE_SIZE" default:"6"`
	Timeout  time.Duration `envconfig:"STOREFRONT_CATALOG_TIMEOUT" default:"0s"`
}

type CartConfig struct {
	StorageKey  string `envconfig:"STOREFRONT_CART_STORAGE_KEY" default:"cart"`
	LoginKey    string `envconfig:"STOREFRONT_LOGIN_STORAGE_KEY" default:"isLoggedIn"`
	ShippingFee string `envconfig:"STOREFRONT_CART_SHIPPING_FEE" default:"2.00"`
}

// Shipping returns the configured flat shipping fee.
func (c CartConfig) Shipping() decimal.Decimal {
	fee, err := decimal.NewFromString(strings.TrimSpace(c.ShippingFee))
	if err != nil {
		return decimal.Zero
	}
	return fee
}

type NotifyConfig struct {
	DismissAfter time.Duration `envconfig:"STOREFRONT_NOTIFY_DISMISS_AFTER" default:"2s"`
	FadeFor      time.Duration `envconfig:"STOREFRONT_NOTIFY_FADE_FOR" default:"300ms"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"STOREFRONT_SESSION_COOKIE" default:"sf_session"`
	Secret     string        `envconfig:"STOREFRONT_SESSION_SECRET" required:"true"`
	Issuer     string        `envconfig:"STOREFRONT_SESSION_ISSUER" default:"storefront"`
	TTL        time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"720h"`
	Secure     bool          `envconfig:"STOREFRONT_SESSION_SECURE" default:"false"`
}

type StorageConfig struct {
	Driver      string `envconfig:"STOREFRONT_STORAGE_DRIVER" default:"memory"`
	AutoMigrate bool   `envconfig:"STOREFRONT_STORAGE_AUTO_MIGRATE" default:"false"`
}

// DriverKind returns the parsed storage driver.
func (s StorageConfig) DriverKind() enums.StorageDriver {
	driver, err := enums.ParseStorageDriver(strings.ToLower(strings.TrimSpace(s.Driver)))
	if err != nil {
		return enums.StorageDriverMemory
	}
	return driver
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQuery       time.Duration `envconfig:"STOREFRONT_DB_SLOW_QUERY" default:"200ms"`
}

// IsSQLite reports whether the SQL backend should use the sqlite dialect.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return fmt.Errorf("%s is required", EnvSessionSecret)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("%s must be positive", EnvCatalogPageSize)
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(c.Cart.ShippingFee)); err != nil {
		return fmt.Errorf("%s must be a decimal: %w", EnvCartShippingFee, err)
	}
	if _, err := enums.ParseStorageDriver(strings.ToLower(strings.TrimSpace(c.Storage.Driver))); err != nil {
		return fmt.Errorf("%s: %w", EnvStorageDriver, err)
	}

	switch c.Storage.DriverKind() {
	case enums.StorageDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for redis storage", EnvRedisURL, EnvRedisAddr)
		}
	case enums.StorageDriverSQL:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for sql storage", EnvDBDSN)
		}
	}
	return nil
}

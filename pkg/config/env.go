package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	EnvAppEnv          = "STOREFRONT_APP_ENV"
	EnvPort            = "STOREFRONT_APP_PORT"
	EnvLogLevel        = "STOREFRONT_LOG_LEVEL"
	EnvCatalogURL      = "STOREFRONT_CATALOG_URL"
	EnvCatalogPageSize = "STOREFRONT_CATALOG_PAGE_SIZE"
	EnvCartShippingFee = "STOREFRONT_CART_SHIPPING_FEE"
	EnvSessionSecret   = "STOREFRONT_SESSION_SECRET"
	EnvStorageDriver   = "STOREFRONT_STORAGE_DRIVER"
	EnvRedisURL        = "STOREFRONT_REDIS_URL"
	EnvRedisAddr       = "STOREFRONT_REDIS_ADDR"
	EnvDBDSN           = "STOREFRONT_DB_DSN"
	EnvDBDriver        = "STOREFRONT_DB_DRIVER"
)

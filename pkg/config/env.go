package config

const EnvPrefix = "MUSEUMCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	CartBackendRedis  = "redis"
	CartBackendMemory = "memory"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

const (
	EnvAppEnv        = "MUSEUMCART_APP_ENV"
	EnvPort          = "MUSEUMCART_APP_PORT"
	EnvLogLevel      = "MUSEUMCART_LOG_LEVEL"
	EnvRedisURL      = "MUSEUMCART_REDIS_URL"
	EnvRedisAddr     = "MUSEUMCART_REDIS_ADDR"
	EnvCartBackend   = "MUSEUMCART_CART_BACKEND"
	EnvCartKeyPrefix = "MUSEUMCART_CART_KEY_PREFIX"
	EnvCartTTL       = "MUSEUMCART_CART_TTL"
	EnvDBDriver      = "MUSEUMCART_DB_DRIVER"
	EnvDBDSN         = "MUSEUMCART_DB_DSN"
	EnvAutoMigrate   = "MUSEUMCART_AUTO_MIGRATE"
)

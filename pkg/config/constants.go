package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "WISHLISTS"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "WISHLISTS_APP_ENV"
	EnvPort     = "WISHLISTS_APP_PORT"
	EnvDBDSN    = "WISHLISTS_DB_DSN"
	EnvDBHost   = "WISHLISTS_DB_HOST"
	EnvDBUser   = "WISHLISTS_DB_USER"
	EnvDBName   = "WISHLISTS_DB_NAME"
	EnvRedisURL = "WISHLISTS_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

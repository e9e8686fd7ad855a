package config

// EnvPrefix is the envconfig prefix for all service configuration.
const EnvPrefix = "BREWDECK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names, used by tests and error messages.
const (
	EnvAppEnv     = "BREWDECK_APP_ENV"
	EnvPort       = "BREWDECK_APP_PORT"
	EnvDBDSN      = "BREWDECK_DB_DSN"
	EnvDBHost     = "BREWDECK_DB_HOST"
	EnvDBUser     = "BREWDECK_DB_USER"
	EnvDBName     = "BREWDECK_DB_NAME"
	EnvRedisURL   = "BREWDECK_REDIS_URL"
	EnvJWTSecret  = "BREWDECK_JWT_SECRET"
	EnvJWTIssuer  = "BREWDECK_JWT_ISSUER"
	EnvJWTExpMins = "BREWDECK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

// EnvPrefix is passed to envconfig; individual fields carry their full
// variable names so the prefix only matters for error reporting.
const EnvPrefix = "FIGUREHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "FIGUREHUB_APP_ENV"
	EnvPort     = "FIGUREHUB_APP_PORT"
	EnvLogLevel = "FIGUREHUB_LOG_LEVEL"

	EnvDBDSN  = "FIGUREHUB_DB_DSN"
	EnvDBHost = "FIGUREHUB_DB_HOST"
	EnvDBUser = "FIGUREHUB_DB_USER"
	EnvDBName = "FIGUREHUB_DB_NAME"

	EnvRedisURL = "FIGUREHUB_REDIS_URL"

	EnvJWTSecret  = "FIGUREHUB_JWT_SECRET"
	EnvJWTIssuer  = "FIGUREHUB_JWT_ISSUER"
	EnvJWTExpMins = "FIGUREHUB_JWT_EXPIRATION_MINUTES"

	EnvGCPProjectID = "FIGUREHUB_GCP_PROJECT_ID"

	EnvPubSubDomainTopic = "FIGUREHUB_PUBSUB_DOMAIN_TOPIC"
	EnvPubSubDomainSub   = "FIGUREHUB_PUBSUB_DOMAIN_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

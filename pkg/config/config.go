package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Checkout     CheckoutConfig
	Sweeper      SweeperConfig
	Carrier      CarrierConfig
	Loyalty      LoyaltyConfig
	FeatureFlags FeatureFlagsConfig
	Eventing     EventingConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FIGUREHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"FIGUREHUB_APP_PORT" required:"true"`
	MetricsPort  string `envconfig:"FIGUREHUB_METRICS_PORT" default:"9091"`
	LogLevel     string `envconfig:"FIGUREHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FIGUREHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"FIGUREHUB_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"FIGUREHUB_DB_DSN"`
	Driver string `envconfig:"FIGUREHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FIGUREHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"FIGUREHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FIGUREHUB_DB_USER"`
	LegacyPassword string `envconfig:"FIGUREHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"FIGUREHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"FIGUREHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FIGUREHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FIGUREHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FIGUREHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FIGUREHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FIGUREHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FIGUREHUB_REDIS_ADDR"`
	Password     string        `envconfig:"FIGUREHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"FIGUREHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FIGUREHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FIGUREHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FIGUREHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FIGUREHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FIGUREHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FIGUREHUB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FIGUREHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FIGUREHUB_JWT_EXPIRATION_MINUTES" default:"60"`
}

// CheckoutConfig governs the order builder: how long an unpaid order holds its
// reservations and what the customer is charged for shipping.
type CheckoutConfig struct {
	PaymentDeadline time.Duration `envconfig:"FIGUREHUB_CHECKOUT_PAYMENT_DEADLINE" default:"15m"`
	FlatShippingFee int64         `envconfig:"FIGUREHUB_CHECKOUT_FLAT_SHIPPING_FEE" default:"30000"`
}

type SweeperConfig struct {
	Interval  time.Duration `envconfig:"FIGUREHUB_SWEEP_INTERVAL" default:"1m"`
	BatchSize int           `envconfig:"FIGUREHUB_SWEEP_BATCH_SIZE" default:"200"`
}

type CarrierConfig struct {
	WebhookToken string        `envconfig:"FIGUREHUB_CARRIER_WEBHOOK_TOKEN"`
	QuoteTimeout time.Duration `envconfig:"FIGUREHUB_CARRIER_QUOTE_TIMEOUT" default:"5s"`
	QuoteBaseFee int64         `envconfig:"FIGUREHUB_CARRIER_QUOTE_BASE_FEE" default:"22000"`
	QuotePerKilo int64         `envconfig:"FIGUREHUB_CARRIER_QUOTE_PER_KILO" default:"5500"`

	WebhookRateLimitWindow time.Duration `envconfig:"FIGUREHUB_CARRIER_WEBHOOK_RL_WINDOW" default:"1m"`
	WebhookRateLimitPerIP  int           `envconfig:"FIGUREHUB_CARRIER_WEBHOOK_RL_PER_IP" default:"120"`
}

type LoyaltyConfig struct {
	// Points accrued per PointsDivisor of order total on completion.
	PointsDivisor int64 `envconfig:"FIGUREHUB_LOYALTY_POINTS_DIVISOR" default:"1000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FIGUREHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FIGUREHUB_AUTO_MIGRATE" default:"false"`
}

type EventingConfig struct {
	OutboxIdempotencyTTL time.Duration `envconfig:"FIGUREHUB_EVENTING_IDEMPOTENCY_TTL" default:"720h"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"FIGUREHUB_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"FIGUREHUB_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"FIGUREHUB_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"FIGUREHUB_PUBSUB_DOMAIN_TOPIC" required:"true"`
	DomainSubscription string `envconfig:"FIGUREHUB_PUBSUB_DOMAIN_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"FIGUREHUB_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"FIGUREHUB_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"FIGUREHUB_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

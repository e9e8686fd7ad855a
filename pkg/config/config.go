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
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Kitchen      KitchenConfig
	Cart         CartConfig
	Loyalty      LoyaltyConfig
	Assistant    AssistantConfig
	QR           QRConfig
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
	Env          string `envconfig:"BREWDECK_APP_ENV" required:"true"`
	Port         string `envconfig:"BREWDECK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BREWDECK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BREWDECK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"BREWDECK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"BREWDECK_DB_DSN"`
	Driver string `envconfig:"BREWDECK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BREWDECK_DB_HOST"`
	LegacyPort     int    `envconfig:"BREWDECK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BREWDECK_DB_USER"`
	LegacyPassword string `envconfig:"BREWDECK_DB_PASSWORD"`
	LegacyName     string `envconfig:"BREWDECK_DB_NAME"`
	LegacySSLMode  string `envconfig:"BREWDECK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BREWDECK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BREWDECK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BREWDECK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BREWDECK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BREWDECK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BREWDECK_REDIS_ADDR"`
	Password     string        `envconfig:"BREWDECK_REDIS_PASSWORD"`
	DB           int           `envconfig:"BREWDECK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BREWDECK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BREWDECK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BREWDECK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BREWDECK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BREWDECK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BREWDECK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BREWDECK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BREWDECK_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"BREWDECK_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the anonymous session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type RateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"BREWDECK_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginNameLimit  int           `envconfig:"BREWDECK_RATE_LIMIT_LOGIN_NAME_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"BREWDECK_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	FeedbackWindow  time.Duration `envconfig:"BREWDECK_RATE_LIMIT_FEEDBACK_WINDOW" default:"5m"`
	FeedbackIPLimit int           `envconfig:"BREWDECK_RATE_LIMIT_FEEDBACK_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BREWDECK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BREWDECK_AUTO_MIGRATE" default:"false"`
	SeedMenu    bool `envconfig:"BREWDECK_SEED_MENU" default:"false"`
}

type KitchenConfig struct {
	ActivationInterval time.Duration `envconfig:"BREWDECK_KITCHEN_ACTIVATION_INTERVAL" default:"10s"`
	PreparationLead    time.Duration `envconfig:"BREWDECK_KITCHEN_PREPARATION_LEAD" default:"15m"`
	FeedLimit          int           `envconfig:"BREWDECK_KITCHEN_FEED_LIMIT" default:"100"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"BREWDECK_CART_TTL" default:"72h"`
}

type LoyaltyConfig struct {
	RewardThreshold int           `envconfig:"BREWDECK_LOYALTY_REWARD_THRESHOLD" default:"5"`
	GuestTTL        time.Duration `envconfig:"BREWDECK_LOYALTY_GUEST_TTL" default:"8760h"`
}

type AssistantConfig struct {
	APIKey  string        `envconfig:"BREWDECK_ASSISTANT_API_KEY"`
	BaseURL string        `envconfig:"BREWDECK_ASSISTANT_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	Model   string        `envconfig:"BREWDECK_ASSISTANT_MODEL" default:"gemini-2.5-flash"`
	Timeout time.Duration `envconfig:"BREWDECK_ASSISTANT_TIMEOUT" default:"30s"`
}

type QRConfig struct {
	PublicBaseURL string `envconfig:"BREWDECK_QR_PUBLIC_BASE_URL"`
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

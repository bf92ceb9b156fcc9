package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is accepted by envconfig but every field carries its own
	// fully qualified variable name, so the prefix stays empty.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	Cart       CartConfig
	Stripe     StripeConfig
	Chat       ChatConfig
	Newsletter NewsletterConfig
	SMTP       SMTPConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"JTBAKERY_APP_ENV" required:"true"`
	Port         string `envconfig:"JTBAKERY_APP_PORT" default:"8080"`
	BaseURL      string `envconfig:"JTBAKERY_BASE_URL" default:"http://localhost:3000"`
	LogLevel     string `envconfig:"JTBAKERY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JTBAKERY_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"JTBAKERY_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SiteURL joins the public site base URL with the given path.
func (a AppConfig) SiteURL(path string) string {
	base := strings.TrimRight(a.BaseURL, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

type DBConfig struct {
	DSN             string        `envconfig:"JTBAKERY_DB_DSN" required:"true"`
	MaxOpenConns    int           `envconfig:"JTBAKERY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JTBAKERY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JTBAKERY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JTBAKERY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JTBAKERY_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"JTBAKERY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JTBAKERY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JTBAKERY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JTBAKERY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JTBAKERY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	// Flat-rate delivery fee in dollars applied when the shipping method
	// is home delivery. Pickup orders are never charged a fee.
	ShippingFlatFee string        `envconfig:"JTBAKERY_CART_SHIPPING_FLAT_FEE" default:"15.00"`
	SnapshotTTL     time.Duration `envconfig:"JTBAKERY_CART_SNAPSHOT_TTL" default:"720h"`
}

type StripeConfig struct {
	APIKey              string `envconfig:"JTBAKERY_STRIPE_API_KEY"`
	WebhookSecret       string `envconfig:"JTBAKERY_STRIPE_WEBHOOK_SECRET"`
	Env                 string `envconfig:"JTBAKERY_STRIPE_ENV" default:"test"`
	SubscriptionPriceID string `envconfig:"JTBAKERY_STRIPE_SUBSCRIPTION_PRICE_ID"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type ChatConfig struct {
	APIKey      string        `envconfig:"JTBAKERY_LLM_API_KEY"`
	BaseURL     string        `envconfig:"JTBAKERY_LLM_BASE_URL" default:"https://api.openai.com"`
	Model       string        `envconfig:"JTBAKERY_LLM_MODEL" default:"gpt-4o-mini"`
	Timeout     time.Duration `envconfig:"JTBAKERY_LLM_TIMEOUT" default:"60s"`
	MaxBodySize int64         `envconfig:"JTBAKERY_LLM_MAX_BODY_BYTES" default:"65536"`
}

type NewsletterConfig struct {
	ListPath string `envconfig:"JTBAKERY_NEWSLETTER_LIST_PATH" default:"data/newsletter.json"`
	NotifyTo string `envconfig:"JTBAKERY_NEWSLETTER_NOTIFY_TO"`
}

type SMTPConfig struct {
	Host     string `envconfig:"JTBAKERY_SMTP_HOST"`
	Port     int    `envconfig:"JTBAKERY_SMTP_PORT" default:"587"`
	Username string `envconfig:"JTBAKERY_SMTP_USERNAME"`
	Password string `envconfig:"JTBAKERY_SMTP_PASSWORD"`
	From     string `envconfig:"JTBAKERY_SMTP_FROM"`
}

// Configured reports whether outward mail can be sent at all.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.From != ""
}

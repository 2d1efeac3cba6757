package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	HttpServer     HttpServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	HttpClient     HttpClientConfig
	MessageStream  MessageStreamConfig
	UserService    UserServiceConfig
	LoyaltyService LoyaltyServiceConfig
	Booking        BookingConfig
	Checkout       CheckoutConfig
	Webhook        WebhookConfig
}

type HttpServerConfig struct {
	Port string `envconfig:"HTTP_SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	Username        string        `envconfig:"DB_USERNAME" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Name            string        `envconfig:"DB_NAME" default:"salon"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	// QueryTimeout bounds every store call so a stalled database cannot
	// wedge the webhook receiver.
	QueryTimeout time.Duration `envconfig:"DB_QUERY_TIMEOUT" default:"10s"`
	AutoMigrate  bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type HttpClientConfig struct {
	// Type selects the breaker: "consecutive", "threshold" or "rate".
	Type       string        `envconfig:"HTTP_CLIENT_BREAKER_TYPE" default:"consecutive"`
	Timeout    time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"5s"`
	Threshold  int64         `envconfig:"HTTP_CLIENT_BREAKER_THRESHOLD" default:"5"`
	Rate       float64       `envconfig:"HTTP_CLIENT_BREAKER_RATE" default:"0.5"`
	MinSamples int64         `envconfig:"HTTP_CLIENT_BREAKER_MIN_SAMPLES" default:"20"`
}

type MessageStreamConfig struct {
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     string `envconfig:"RABBITMQ_PORT" default:"5672"`
	Username string `envconfig:"RABBITMQ_USERNAME" default:"guest"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"guest"`
}

type UserServiceConfig struct {
	Host string `envconfig:"USER_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"USER_SERVICE_PORT" default:"8081"`
}

type LoyaltyServiceConfig struct {
	Host string `envconfig:"LOYALTY_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"LOYALTY_SERVICE_PORT" default:"8082"`
}

type BookingConfig struct {
	OpenAt      string        `envconfig:"BUSINESS_OPEN_AT" default:"09:00"`
	CloseAt     string        `envconfig:"BUSINESS_CLOSE_AT" default:"18:00"`
	SlotSize    time.Duration `envconfig:"SLOT_SIZE" default:"30m"`
	StaggerStep time.Duration `envconfig:"GROUP_STAGGER_STEP" default:"15m"`
	// ReadFailurePolicy decides what availability reports when the store
	// cannot be read. "open" reports every slot free: an overbooking can be
	// fixed at the front desk, a lost booking cannot. "closed" returns the
	// error to the caller instead.
	ReadFailurePolicy string `envconfig:"AVAILABILITY_READ_FAILURE_POLICY" default:"open"`
}

type CheckoutConfig struct {
	TaxRate               decimal.Decimal `envconfig:"TAX_RATE" default:"0.05"`
	PaymentToleranceCents int64           `envconfig:"PAYMENT_TOLERANCE_CENTS" default:"1"`
	Currency              string          `envconfig:"CURRENCY" default:"USD"`
	LoyaltyMaxRetry       int             `envconfig:"LOYALTY_MAX_RETRY" default:"10"`
}

type WebhookConfig struct {
	// SignatureMode is "enforced" or "development_bypass". Bypass has to be
	// chosen explicitly; an empty secret never silently disables checks.
	SignatureMode   string        `envconfig:"WEBHOOK_SIGNATURE_MODE" default:"enforced"`
	SignatureKey    string        `envconfig:"WEBHOOK_SIGNATURE_KEY" default:""`
	NotificationURL string        `envconfig:"WEBHOOK_NOTIFICATION_URL" default:""`
	LockExpiry      time.Duration `envconfig:"WEBHOOK_LOCK_EXPIRY" default:"30s"`
}

const (
	SignatureModeEnforced          = "enforced"
	SignatureModeDevelopmentBypass = "development_bypass"

	ReadFailurePolicyOpen   = "open"
	ReadFailurePolicyClosed = "closed"
)

func InitConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("error load config: %v", err)
	}
	return cfg
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Webhook.SignatureMode {
	case SignatureModeEnforced:
		if c.Webhook.SignatureKey == "" {
			return fmt.Errorf("WEBHOOK_SIGNATURE_KEY is required when WEBHOOK_SIGNATURE_MODE=%s", SignatureModeEnforced)
		}
	case SignatureModeDevelopmentBypass:
	default:
		return fmt.Errorf("unknown WEBHOOK_SIGNATURE_MODE %q", c.Webhook.SignatureMode)
	}

	switch c.Booking.ReadFailurePolicy {
	case ReadFailurePolicyOpen, ReadFailurePolicyClosed:
	default:
		return fmt.Errorf("unknown AVAILABILITY_READ_FAILURE_POLICY %q", c.Booking.ReadFailurePolicy)
	}

	if c.Checkout.TaxRate.IsNegative() {
		return fmt.Errorf("TAX_RATE must not be negative")
	}
	if c.Checkout.PaymentToleranceCents < 0 {
		return fmt.Errorf("PAYMENT_TOLERANCE_CENTS must not be negative")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive")
	}
	return nil
}

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"3001"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Booking store
	BookingStore string `envconfig:"BOOKING_STORE" default:"postgres" validate:"oneof=postgres mongo memory"`
	DBHost       string `envconfig:"DB_HOST" default:"localhost"`
	DBPort       int    `envconfig:"DB_PORT" default:"5432"`
	DBUser       string `envconfig:"DB_USER"`
	DBPassword   string `envconfig:"DB_PASSWORD"`
	DBName       string `envconfig:"DB_NAME"`
	DBSSLMode    string `envconfig:"DB_SSLMODE" default:"disable"`
	MongoDBURI   string `envconfig:"MONGODB_URI" validate:"required_if=BookingStore mongo"`
	MongoDBName  string `envconfig:"MONGODB_DATABASE" default:"bookings"`

	// Collaborators
	EventServiceURL     string        `envconfig:"SPRING_BOOT_URL" default:"http://localhost:8080" validate:"required,url"`
	EventServiceTimeout time.Duration `envconfig:"EVENT_SERVICE_TIMEOUT" default:"10s"`
	RabbitMQURL         string        `envconfig:"RABBITMQ_URL" default:"amqp://localhost" validate:"required"`
	QueueName           string        `envconfig:"RABBITMQ_QUEUE_NAME" default:"booking_notifications" validate:"required"`

	// Identity
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true" validate:"required"`
	JWKSURL     string `envconfig:"JWKS_URL" validate:"omitempty,url"`
	TokenCookie string `envconfig:"TOKEN_COOKIE" default:"token" validate:"required"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	OTLPEndpoint   string   `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

var validate = validator.New()

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// PostgresDSN builds a lib/pq connection URL from the DB_* settings.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
	}
	if c.DBUser != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

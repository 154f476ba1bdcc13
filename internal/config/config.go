package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/kaushalNeupane10/CloudBite/pkg/config"
	"github.com/kaushalNeupane10/CloudBite/pkg/validator"
)

// Config holds the storefront's runtime configuration, loaded from the
// environment.
type Config struct {
	// APIBaseURL is the root of the ordering API, including the /api prefix.
	APIBaseURL string        `env:"CLOUDBITE_API_BASE_URL" envDefault:"http://localhost:8000/api" validate:"required,url"`
	APITimeout time.Duration `env:"CLOUDBITE_API_TIMEOUT" envDefault:"10s"`
	APIRetries int           `env:"CLOUDBITE_API_RETRIES" envDefault:"3" validate:"min=0,max=10"`

	// Profile namespaces the credential store so independent accounts on
	// one machine do not share sessions or carts.
	Profile string `env:"CLOUDBITE_PROFILE" envDefault:"default" validate:"required"`

	// RedisAddr is optional; when empty the credential store falls back to
	// process memory and cross-process cart sync is disabled.
	RedisAddr     string `env:"CLOUDBITE_REDIS_ADDR"`
	RedisPassword string `env:"CLOUDBITE_REDIS_PASSWORD"`
	RedisDB       int    `env:"CLOUDBITE_REDIS_DB" envDefault:"0"`

	// CallbackAddr is where the checkout listener receives the payment
	// processor's success and cancel redirects.
	CallbackAddr string `env:"CLOUDBITE_CALLBACK_ADDR" envDefault:"127.0.0.1:4242" validate:"required"`

	// StripePublishableKey composes the hosted payment page URL shown to
	// the user after a checkout session is created.
	StripePublishableKey string `env:"CLOUDBITE_STRIPE_PUBLISHABLE_KEY"`

	LogLevel string `env:"CLOUDBITE_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

// Load reads and validates the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, err
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// RedisEnabled reports whether a Redis-backed credential store is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

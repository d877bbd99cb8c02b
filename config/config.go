// Package config loads the immutable run configuration. Nothing else in the repository reads
// environment variables; the Config value is built once in main and passed down.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the targets and timeouts for a test run.
type Config struct {
	CartBaseURL      string        `env:"CART_API_BASE_URL" envDefault:"https://dummyjson.com/carts" validate:"required,url"`
	CartID           int           `env:"CART_ID" envDefault:"1" validate:"gte=1"`
	MissingCartID    int           `env:"MISSING_CART_ID" envDefault:"999999" validate:"gte=1,nefield=CartID"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	ScenarioTimeout  time.Duration `env:"SCENARIO_TIMEOUT" envDefault:"30s" validate:"gte=0"`
	PreflightTimeout time.Duration `env:"PREFLIGHT_TIMEOUT" envDefault:"10s" validate:"gte=0"`
	BatchConcurrency int           `env:"BATCH_CONCURRENCY" envDefault:"5" validate:"gte=1"`

	DeliveryAppURL   string        `env:"DELIVERY_APP_URL" envDefault:"https://app-hom.cocobambu.com/delivery" validate:"required,url"`
	WebDriverURL     string        `env:"WEBDRIVER_URL" validate:"omitempty,url"`
	BrowserName      string        `env:"BROWSER_NAME" envDefault:"chrome" validate:"required"`
	PageReadyTimeout time.Duration `env:"PAGE_READY_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	ViewportWidth    int           `env:"VIEWPORT_WIDTH" envDefault:"1280" validate:"gt=0"`
	ViewportHeight   int           `env:"VIEWPORT_HEIGHT" envDefault:"720" validate:"gt=0"`
}

var validate = validator.New()

// Load reads an optional .env file from the working directory, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// FromMap builds a Config from the given variables instead of the process environment.
// Unset variables take their defaults.
func FromMap(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	cfg, err := FromMap(map[string]string{})
	if err != nil {
		panic(err) // the defaults above are constants
	}
	return cfg
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// WithCartBaseURL returns a copy of the configuration pointing at another cart API.
func (c Config) WithCartBaseURL(url string) Config {
	c.CartBaseURL = strings.TrimSuffix(url, "/")
	return c
}

// PreflightEnabled is false when PREFLIGHT_TIMEOUT is 0, which skips waiting for the cart API
// and WebDriver endpoint to answer before the run.
func (c Config) PreflightEnabled() bool {
	return c.PreflightTimeout > 0
}

// BrowserEnabled is true if a WebDriver endpoint was configured.
func (c Config) BrowserEnabled() bool {
	return c.WebDriverURL != ""
}

// TemplateVars are the placeholder values every fixture URL may refer to.
func (c Config) TemplateVars() map[string]string {
	return map[string]string{
		"baseURL":       strings.TrimSuffix(c.CartBaseURL, "/"),
		"cartId":        strconv.Itoa(c.CartID),
		"missingCartId": strconv.Itoa(c.MissingCartID),
	}
}

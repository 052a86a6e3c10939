package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultInferenceURL is used when INFERENCE_URL is unset. Setting it to "" disables the remote stage.
const DefaultInferenceURL = "https://api-inference.huggingface.co/models/google/flan-t5-small"

var ErrInvalidSecretKey = errors.New("SECRET_KEY must be 16, 24 or 32 hex-encoded bytes")

// Config holds application configuration
type Config struct {
	Version     string `env:"VERSION" envDefault:"0.1.0"`
	Port        int    `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	SentryDSN   string `env:"SENTRY_DSN"`

	SecretKey    string `env:"SECRET_KEY,required"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	InferenceURL     string        `env:"INFERENCE_URL"`
	InferenceToken   string        `env:"INFERENCE_TOKEN"`
	InferenceTimeout time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"5s"`

	// SeedUsers maps username to password, e.g. "dipak:hackathon,test:1234"
	SeedUsers map[string]string `env:"SEED_USERS" envDefault:"dipak:hackathon,test:1234" envSeparator:"," envKeyValSeparator:":"`

	TelemetryEnabled bool   `env:"TELEMETRY_ENABLED" envDefault:"false"`
	TelemetryDir     string `env:"TELEMETRY_DIR" envDefault:"logs"`
}

// NewConfig loads an optional .env file and parses the environment into a Config.
func NewConfig() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the current environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	// envDefault would also replace an explicit empty value
	if _, ok := os.LookupEnv("INFERENCE_URL"); !ok {
		cfg.InferenceURL = DefaultInferenceURL
	}
	if _, err := cfg.SecretKeyBytes(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsEnvProd() bool {
	if c.Environment == "prod" && c.SentryDSN != "" {
		return true
	}
	return false
}

// SecretKeyBytes decodes SECRET_KEY into an AES key.
func (c *Config) SecretKeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKey, err)
	}
	switch len(key) {
	case 16, 24, 32:
		return key, nil
	default:
		return nil, ErrInvalidSecretKey
	}
}

// RemoteEnabled reports whether the inference endpoint should be tried at all.
func (c *Config) RemoteEnabled() bool {
	return c.InferenceURL != ""
}

// Package config loads the gateway server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/yourorg/adyen-gateway/internal/policy"
)

// Config is the server configuration.
type Config struct {
	MerchantAccount  string        `validate:"required"`
	Login            string        `validate:"required"`
	Password         string        `validate:"required"`
	Environment      string        `validate:"oneof=test live"`
	EndpointTemplate string        `validate:"omitempty,contains={service}"`
	Timeout          time.Duration `validate:"gt=0"`

	HTTPAddr string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn error"`

	BreakerFailureThreshold int           `validate:"gte=0"`
	BreakerResetTimeout     time.Duration `validate:"gt=0"`

	PolicyRules []policy.Rule
	TraceStdout bool
}

// Live reports whether the live Adyen environment is selected.
func (c *Config) Live() bool { return c.Environment == "live" }

var validate = validator.New()

// Load reads .env files (if present) and the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}

	cfg := &Config{
		MerchantAccount:  os.Getenv("ADYEN_MERCHANT_ACCOUNT"),
		Login:            os.Getenv("ADYEN_LOGIN"),
		Password:         os.Getenv("ADYEN_PASSWORD"),
		Environment:      strings.ToLower(envOr("ADYEN_ENVIRONMENT", "test")),
		EndpointTemplate: os.Getenv("ADYEN_ENDPOINT_TEMPLATE"),
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		LogLevel:         strings.ToLower(envOr("LOG_LEVEL", "info")),
	}

	var err error
	if cfg.Timeout, err = durationEnv("ADYEN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.BreakerResetTimeout, err = durationEnv("BREAKER_RESET_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.BreakerFailureThreshold, err = intEnv("BREAKER_FAILURE_THRESHOLD", 5); err != nil {
		return nil, err
	}
	if v := os.Getenv("TRACE_STDOUT"); v != "" {
		if cfg.TraceStdout, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("config: TRACE_STDOUT: %w", err)
		}
	}
	if raw := os.Getenv("POLICY_RULES"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.PolicyRules); err != nil {
			return nil, fmt.Errorf("config: POLICY_RULES: %w", err)
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the thingful server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the JSON HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC API.
//   - DatabaseDSN: postgres://... (pgx), sqlite://path or memory://.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: token lifetime; zero issues tokens without exp.
//   - BcryptCost: bcrypt work factor for stored password hashes.
//   - LogFormat / LogLevel: logger selection.
type Config struct {
	EndpointAddrHTTP            string        `env:"HTTP_ADDRESS" validate:"required"`
	EndpointAddrGRPC            string        `env:"GRPC_ADDRESS" validate:"required"`
	DatabaseDSN                 string        `env:"DATABASE_URL" validate:"required"`
	SecretKey                   string        `env:"JWT_SECRET" validate:"required"`
	AccessTokenValidityDuration time.Duration `env:"JWT_EXPIRY" validate:"gte=0"`
	BcryptCost                  int           `env:"BCRYPT_COST" validate:"gte=4,lte=31"`
	LogFormat                   string        `env:"LOG_FORMAT" validate:"oneof=json console"`
	LogLevel                    string        `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "memory://"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 0
	c.BcryptCost = 10
	c.LogFormat = "json"
	c.LogLevel = "info"
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

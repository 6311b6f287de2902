// Package config handles configuration for the wallet store,
// including defaults, a JSON or YAML file overlay, and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/mywallet/internal/common"
	"github.com/dmitrijs2005/mywallet/internal/cryptox"
	"github.com/dmitrijs2005/mywallet/internal/dbx"
)

// Log formats accepted by LogFormat.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDriver: "sqlite" or "pgx".
//   - DatabaseDSN: data source name passed to the driver.
//   - HashIterations: PBKDF2 iteration count for newly produced credential hashes.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - LogFormat: "json" (slog) or "console" (zerolog).
//   - SeedOnInit: insert demonstration rows after initializing the schema.
type Config struct {
	DatabaseDriver              string
	DatabaseDSN                 string
	HashIterations              int
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogFormat                   string
	SeedOnInit                  bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside local use.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = dbx.DriverSQLite
	c.DatabaseDSN = "mywallet.db"
	c.HashIterations = cryptox.DefaultIterations
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 8 * time.Hour
	c.LogFormat = LogFormatJSON
	c.SeedOnInit = false
}

// Validate reports settings that cannot be used to start.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case dbx.DriverSQLite, dbx.DriverPostgres:
	default:
		return fmt.Errorf("%w: unsupported database driver %q", common.ErrorValidation, c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("%w: database dsn is empty", common.ErrorValidation)
	}
	if c.HashIterations <= 0 {
		return fmt.Errorf("%w: hash iterations must be positive", common.ErrorValidation)
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("%w: access token validity must be positive", common.ErrorValidation)
	}
	switch c.LogFormat {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("%w: unsupported log format %q", common.ErrorValidation, c.LogFormat)
	}
	return nil
}

// Load builds a Config by applying defaults, then overlaying values from the
// file named by --config (if any) and finally the explicitly set flags.
func Load(f *Flags) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if f.ConfigFile != "" {
		if err := LoadFile(cfg, f.ConfigFile); err != nil {
			return nil, err
		}
	}

	f.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

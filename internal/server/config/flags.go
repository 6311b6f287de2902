package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds the configuration flags registered on a pflag.FlagSet.
//
// Supported flags:
//
//	--config string          path to a JSON or YAML config file
//	--driver string          database driver (sqlite, pgx)
//	--dsn string             database DSN
//	--hash-iterations int    PBKDF2 iterations for new credential hashes
//	--secret string          JWT HMAC secret key
//	--token-ttl duration     access token validity
//	--log-format string      json or console
//
// Only flags the user actually set override file and default values.
type Flags struct {
	fs *pflag.FlagSet

	ConfigFile     string
	Driver         string
	DSN            string
	HashIterations int
	SecretKey      string
	TokenTTL       time.Duration
	LogFormat      string
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVarP(&f.ConfigFile, "config", "c", "", "path to config file (JSON or YAML)")
	fs.StringVar(&f.Driver, "driver", "", "database driver (sqlite, pgx)")
	fs.StringVar(&f.DSN, "dsn", "", "database DSN")
	fs.IntVar(&f.HashIterations, "hash-iterations", 0, "PBKDF2 iterations for new credential hashes")
	fs.StringVar(&f.SecretKey, "secret", "", "JWT secret key")
	fs.DurationVar(&f.TokenTTL, "token-ttl", 0, "access token validity duration")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format (json, console)")

	return f
}

// Apply copies explicitly set flag values into config.
func (f *Flags) Apply(config *Config) {
	if f.fs.Changed("driver") {
		config.DatabaseDriver = f.Driver
	}
	if f.fs.Changed("dsn") {
		config.DatabaseDSN = f.DSN
	}
	if f.fs.Changed("hash-iterations") {
		config.HashIterations = f.HashIterations
	}
	if f.fs.Changed("secret") {
		config.SecretKey = f.SecretKey
	}
	if f.fs.Changed("token-ttl") {
		config.AccessTokenValidityDuration = f.TokenTTL
	}
	if f.fs.Changed("log-format") {
		config.LogFormat = f.LogFormat
	}
}

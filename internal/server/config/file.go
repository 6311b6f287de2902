package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/mywallet/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of a configuration file. Durations use
// timex.Duration so they can be written as "8h" or as integer nanoseconds.
// Pointer fields distinguish "absent" from a zero value, so a file only
// overrides the keys it actually sets.
type FileConfig struct {
	DatabaseDriver              *string         `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN                 *string         `json:"database_dsn" yaml:"database_dsn"`
	HashIterations              *int            `json:"hash_iterations" yaml:"hash_iterations"`
	SecretKey                   *string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	LogFormat                   *string         `json:"log_format" yaml:"log_format"`
	SeedOnInit                  *bool           `json:"seed_on_init" yaml:"seed_on_init"`
}

// LoadFile overlays the settings found in path onto config. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	if c.DatabaseDriver != nil {
		config.DatabaseDriver = *c.DatabaseDriver
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.HashIterations != nil {
		config.HashIterations = *c.HashIterations
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.LogFormat != nil {
		config.LogFormat = *c.LogFormat
	}
	if c.SeedOnInit != nil {
		config.SeedOnInit = *c.SeedOnInit
	}
}

// Package config loads emailcheck settings from the environment, with an
// optional .env file in the working directory.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/optimode/emailschema/schema"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds the emailcheck settings.
type Config struct {
	// Strict is the ambient strict default; a schema's own flag wins.
	Strict     bool          `env:"STRICT" envDefault:"false"`
	SchemaFile string        `env:"SCHEMA_FILE"`
	Workers    int           `env:"WORKERS" envDefault:"5"`
	DNSTimeout time.Duration `env:"DNS_TIMEOUT" envDefault:"5s"`
	DNSTTL     time.Duration `env:"DNS_CACHE_TTL" envDefault:"5m"`
	FallbackA  bool          `env:"DNS_FALLBACK_A" envDefault:"false"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Prefix is prepended to every variable name.
const Prefix = "EMAILCHECK_"

// Load reads the optional .env file and then the environment.
// Variables already set in the environment win over .env entries.
func Load() (Config, error) {
	// the .env file is optional
	_ = godotenv.Load()
	return Parse()
}

// Parse reads Config from the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// Ambient returns the ambient schema configuration validators are built with.
func (c Config) Ambient() schema.Dict {
	return schema.Dict{schema.KeyStrict: c.Strict}
}

// Package config reads server settings from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DBPath   string `env:"DB_PATH" envDefault:"data/words.db"`
	WordsDir string `env:"WORDS_DIR"`

	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"336h"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"wordle_player"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	DailySalt        string        `env:"DAILY_SALT" envDefault:"wordle-daily"`
	SessionTTL       time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	KeepScoreOnReset bool          `env:"KEEP_SCORE_ON_RESET" envDefault:"false"`
}

// Load parses the process environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}
	return validate(&cfg)
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: vars})
	if err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}
	return validate(&cfg)
}

// Level returns the zerolog level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Port }

func validate(c *Config) (*Config, error) {
	if c.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}
	if c.SessionTTL <= 0 {
		return nil, errors.Newf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.TokenTTL <= 0 {
		return nil, errors.Newf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return c, nil
}

// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server.
type Config struct {
	Port      string `env:"PORT" envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// Word list source: URL first, then file, then the embedded list.
	WordsURL      string `env:"WORDS_URL"`
	WordsFile     string `env:"WORDS_FILE"`
	WordsAttempts uint   `env:"WORDS_FETCH_ATTEMPTS" envDefault:"3"`

	// Browser origin allowed to call the API.
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	ResolveDelay time.Duration `env:"RESOLVE_DELAY" envDefault:"500ms"`
	ScoreTick    time.Duration `env:"SCORE_TICK" envDefault:"100ms"`
	StackSize    int           `env:"STACK_SIZE" envDefault:"7"`

	// Sessions idle for longer than this are dropped.
	SessionIdle time.Duration `env:"SESSION_IDLE" envDefault:"2h"`
}

// Load reads .env (if any) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) validate() error {
	var errs []error
	if c.StackSize <= 0 {
		errs = append(errs, fmt.Errorf("STACK_SIZE must be positive, got %d", c.StackSize))
	}
	if c.ResolveDelay < 0 {
		errs = append(errs, fmt.Errorf("RESOLVE_DELAY must not be negative, got %s", c.ResolveDelay))
	}
	if c.ScoreTick <= 0 {
		errs = append(errs, fmt.Errorf("SCORE_TICK must be positive, got %s", c.ScoreTick))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	return errors.Join(errs...)
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the environment. They seed CLI flag defaults.
type Env struct {
	DBPath      string `env:"SHIELD_STUDY_DB"          envDefault:"./shield-study.db"`
	ExtensionID string `env:"SHIELD_STUDY_ID"          envDefault:"small-study@shield.mozilla.org"`
	StudyFile   string `env:"SHIELD_STUDY_FILE"`
	Permissions string `env:"SHIELD_STUDY_PERMISSIONS" envDefault:"granted"`
	Port        int    `env:"SHIELD_STUDY_PORT"        envDefault:"8080"`
}

// LoadEnv parses the environment. On error it still returns the defaults so
// callers can register flags, but the error must be reported before any of
// the values are used.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return DefaultEnv(), err
	}
	return cfg, nil
}

// DefaultEnv returns the envDefault values, ignoring the environment.
func DefaultEnv() Env {
	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("invalid envDefault tags: %v", err))
	}
	return cfg
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

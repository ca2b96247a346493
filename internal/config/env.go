package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level settings read from ORBDRIFT_* variables.
// Command-line flags take precedence over these values.
type Env struct {
	ConfigPath string `env:"ORBDRIFT_CONFIG"`
	Difficulty string `env:"ORBDRIFT_DIFFICULTY" envDefault:"normal"`
	FPS        int    `env:"ORBDRIFT_FPS" envDefault:"60"`
	Seed       int64  `env:"ORBDRIFT_SEED"`
	Theme      string `env:"ORBDRIFT_THEME" envDefault:"classic"`
	Debug      bool   `env:"ORBDRIFT_DEBUG"`
	LogLevel   string `env:"ORBDRIFT_LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"ORBDRIFT_LOG_FILE"`
}

// DefaultEnv returns the values used when no variable is set.
func DefaultEnv() Env {
	return Env{
		Difficulty: string(DifficultyNormal),
		FPS:        60,
		Theme:      "classic",
		LogLevel:   "info",
	}
}

// LoadEnv parses the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return DefaultEnv(), fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}

// LoadEnvFrom parses the given variables instead of the process environment.
func LoadEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return DefaultEnv(), fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}

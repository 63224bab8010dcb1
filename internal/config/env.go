package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the ARCADE_* environment overrides. Command-line flags that
// were set explicitly take precedence over these.
type Env struct {
	DBPath     string `env:"ARCADE_DB" envDefault:"~/.arcade/scores.db"`
	FPS        int    `env:"ARCADE_FPS" envDefault:"30"`
	Seed       int64  `env:"ARCADE_SEED"`
	LogLevel   string `env:"ARCADE_LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"ARCADE_LOG_FILE"`
	ConfigDir  string `env:"ARCADE_CONFIG_DIR"`
	SSHAddr    string `env:"ARCADE_SSH_ADDR" envDefault:":23234"`
	RemoteAddr string `env:"ARCADE_REMOTE_ADDR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses the ARCADE_* variables.
func LoadEnv() (Env, error) {
	var e Env
	err := ParseEnv(&e)
	return e, err
}

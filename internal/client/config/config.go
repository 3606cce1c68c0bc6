// Package config loads blogctl settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	APIURL    string `env:"BLOG_API_URL" envDefault:"http://localhost:8080/api"`
	TokenFile string `env:"BLOG_TOKEN_FILE"`
	LogLevel  int    `env:"BLOG_LOG_LEVEL" envDefault:"4"`
}

// Load parses the environment. An empty TokenFile resolves to
// <user config dir>/blogsphere/session.json.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse client config: %w", err)
	}
	if cfg.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.TokenFile = filepath.Join(dir, "blogsphere", "session.json")
	}
	return &cfg, nil
}

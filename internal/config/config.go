package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string  `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel    int     `env:"LOG_LEVEL" envDefault:"0"`
	MySQLDSN    string  `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/blogsphere?charset=utf8mb4&parseTime=True&loc=Local"`
	ResetDB     bool    `env:"RESET_DB" envDefault:"false"`
	SwaggerHost string  `env:"SWAGGER_HOST"`
	Redis       Redis   `envPrefix:"REDIS_"`
	JWT         JWT     `envPrefix:"JWT_"`
	Storage     Storage `envPrefix:"MINIO_"`
}

// Redis contains cache connection parameters.
type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// JWT contains token signing parameters.
type JWT struct {
	Secret string        `env:"SECRET" envDefault:"change-me"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// Storage contains object storage parameters for photo galleries.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"blogsphere-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"blogsphere-secret-key"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"blogsphere-photos"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// SwaggerURL returns the externally reachable swagger UI address.
func (c *Config) SwaggerURL() string {
	switch {
	case c.SwaggerHost == "":
		return "http://localhost:" + c.ServerPort + "/swagger/index.html"
	case len(c.SwaggerHost) >= 7 && c.SwaggerHost[:7] == "http://",
		len(c.SwaggerHost) >= 8 && c.SwaggerHost[:8] == "https://":
		return c.SwaggerHost + "/swagger/index.html"
	default:
		return "http://" + c.SwaggerHost + "/swagger/index.html"
	}
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerHost string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort string `env:"PORT" envDefault:"8000"`

	DBPath string `env:"DB_PATH" envDefault:"data/pulseboard.db"`

	SecretKey string `env:"SECRET_KEY" envDefault:"change_me_in_production"`

	// Optional newline-separated denylist file. Empty keeps the built-in list.
	PasswordDenylistPath string `env:"PASSWORD_DENYLIST_PATH"`

	Timezone string `env:"TZ" envDefault:"UTC"`

	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (cfg Config) ListenAddr() string {
	return cfg.ServerHost + ":" + cfg.ServerPort
}

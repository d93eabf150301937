package config

import (
	"github.com/caarlos0/env/v11"
)

// Config is populated from the environment. A .env file loaded by the
// caller (godotenv) feeds the same variables in development.
type Config struct {
	Port        string `env:"PORT" envDefault:"3001"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	// Bootstrap admin, promoted or created at startup if no admin exists.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"t.o@trend4media.de"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"02327187"`

	// Extra allowed CORS origin for the deployed client.
	ClientURL string `env:"CLIENT_URL"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

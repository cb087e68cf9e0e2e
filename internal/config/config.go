package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds server settings read from the environment.
type Config struct {
	Port       int    `env:"COUP_PORT" envDefault:"8080"`
	PublicHost string `env:"COUP_PUBLIC_HOST"` // host used in join links; request host when empty
	QRSize     int    `env:"COUP_QR_SIZE" envDefault:"256"`
	SendBuffer int    `env:"COUP_SEND_BUFFER" envDefault:"256"`

	// When false every seat is dealt a random role at game start.
	AllowRoleChoice bool `env:"COUP_ALLOW_ROLE_CHOICE" envDefault:"true"`
}

// Load reads the given .env files, if present, then the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.QRSize <= 0 {
		return Config{}, fmt.Errorf("COUP_QR_SIZE must be positive, got %d", cfg.QRSize)
	}
	if cfg.SendBuffer <= 0 {
		return Config{}, fmt.Errorf("COUP_SEND_BUFFER must be positive, got %d", cfg.SendBuffer)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration.
type Config struct {
	// Addr is the HTTP/WebSocket listen address.
	Addr string `env:"GWENTISH_ADDR" envDefault:":8080"`

	// CatalogPath points at the card catalog YAML file.
	CatalogPath string `env:"GWENTISH_CATALOG" envDefault:"data/catalog.yaml"`

	// CatalogDB is the sqlite catalog database path. Empty keeps the
	// catalog purely in memory.
	CatalogDB string `env:"GWENTISH_CATALOG_DB"`

	// BotDifficulty is the default opponent difficulty for solo matches.
	BotDifficulty string `env:"GWENTISH_BOT_DIFFICULTY" envDefault:"normal"`

	// RoundLeader picks who acts first in rounds after the first:
	// loser-leads, winner-leads, or alternate.
	RoundLeader string `env:"GWENTISH_ROUND_LEADER" envDefault:"loser-leads"`

	// HandSize is the number of cards dealt at match start.
	HandSize int `env:"GWENTISH_HAND_SIZE" envDefault:"10"`

	// Seed fixes the match RNG when non-zero, for reproducible games.
	Seed int64 `env:"GWENTISH_SEED"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HandSize <= 0 {
		return Config{}, fmt.Errorf("hand size must be positive, got %d", cfg.HandSize)
	}
	return cfg, nil
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings gameroot reads from the process environment.
type Env struct {
	// Project is the game directory override (second only to --game).
	Project string `env:"VPROJECT"`
	// Layout points at a layout file other than the default one.
	Layout string `env:"GAMEROOT_LAYOUT"`
	// Module overrides the physics module base name.
	Module string `env:"GAMEROOT_MODULE"`
}

// ParseEnv loads Env from the environment.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

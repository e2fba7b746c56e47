// Package envfile loads environment variables such as VPROJECT from .env
// files. Variables already set in the environment take precedence.
package envfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file and sets any variables not already in the
// environment. Returns nil if the file doesn't exist.
func Load(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key, value := range values {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setting %s from %s: %w", key, path, err)
		}
	}
	return nil
}

// LoadAll loads paths in priority order; the first file to define a
// variable wins. Unreadable files are collected, not fatal.
func LoadAll(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := Load(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

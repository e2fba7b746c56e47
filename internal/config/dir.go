// Package config provides gameroot's configuration: the per-user config
// directory, environment settings and the optional layout file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName    = "gameroot"
	layoutFile = "layout.yaml"
	envFile    = "env"
)

// Files are the per-user files gameroot reads from its config directory.
// All fields are empty when no directory could be determined.
type Files struct {
	Dir    string
	Layout string
	Env    string
}

// UserFiles locates the config directory from the process environment.
//
// Resolution:
//   - $GAMEROOT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/gameroot if set (respects XDG on any platform)
//   - %AppData%/gameroot on Windows
//   - ~/.config/gameroot on macOS and Linux
func UserFiles() Files {
	return filesFrom(os.Getenv, os.UserHomeDir, runtime.GOOS)
}

func filesFrom(getenv func(string) string, home func() (string, error), goos string) Files {
	dir := configDir(getenv, home, goos)
	if dir == "" {
		return Files{}
	}
	return Files{
		Dir:    dir,
		Layout: filepath.Join(dir, layoutFile),
		Env:    filepath.Join(dir, envFile),
	}
}

func configDir(getenv func(string) string, home func() (string, error), goos string) string {
	// Explicit override
	if dir := getenv("GAMEROOT_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	// Windows: use AppData
	if goos == "windows" {
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	// macOS and Linux: ~/.config/gameroot
	homeDir, err := home()
	if err != nil || homeDir == "" {
		return ""
	}
	return filepath.Join(homeDir, ".config", appName)
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/gameroot/internal/modloc"
	"github.com/gorewood/gameroot/internal/roots"
)

// Layout describes a deployment's directory conventions. Every field is
// optional; empty fields keep the built-in defaults.
//
//	markers: [gameinfo.txt, gameinfo.gi]
//	module: vphysics
//	platform_bin_dir: bin/linux64
//	bin_dir: bin
//	factory_symbol: CreateInterface
type Layout struct {
	Markers        []string `yaml:"markers"`
	Module         string   `yaml:"module"`
	PlatformBinDir string   `yaml:"platform_bin_dir"`
	BinDir         string   `yaml:"bin_dir"`
	FactorySymbol  string   `yaml:"factory_symbol"`
}

// DefaultLayout returns the built-in conventions.
func DefaultLayout() Layout {
	return Layout{
		Markers: append([]string(nil), roots.DefaultMarkers...),
		Module:  modloc.PhysicsModule,
	}
}

// LoadLayout reads a layout file over the defaults. A missing file is not
// an error; a malformed one is.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return layout, nil
		}
		return layout, fmt.Errorf("reading layout %s: %w", path, err)
	}

	var file Layout
	if err := yaml.Unmarshal(data, &file); err != nil {
		return layout, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	layout.merge(file)
	return layout, nil
}

func (l *Layout) merge(other Layout) {
	if len(other.Markers) > 0 {
		l.Markers = other.Markers
	}
	if other.Module != "" {
		l.Module = other.Module
	}
	if other.PlatformBinDir != "" {
		l.PlatformBinDir = other.PlatformBinDir
	}
	if other.BinDir != "" {
		l.BinDir = other.BinDir
	}
	if other.FactorySymbol != "" {
		l.FactorySymbol = other.FactorySymbol
	}
}

// Locator converts the layout to the module locator's settings.
func (l Layout) Locator() modloc.Layout {
	return modloc.Layout{
		PlatformBinDir: l.PlatformBinDir,
		BinDir:         l.BinDir,
		FactorySymbol:  l.FactorySymbol,
	}
}

// Package roots resolves the project root and game root for a gameroot
// invocation.
//
// The project root is the directory holding the input file. The game root
// anchors every GAME/MOD relative path and is chosen by precedence:
//
//  1. an explicit --game directory
//  2. the VPROJECT environment variable
//  3. the nearest ancestor of the project root containing a marker file
//     (gameinfo.txt, then gameinfo.gi)
//  4. the project root itself
//
// Resolution never fails; every miss degrades to the next rule.
package roots

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Source records which precedence rule produced the game root.
type Source string

const (
	SourceFlag     Source = "flag"
	SourceEnv      Source = "env"
	SourceMarker   Source = "marker"
	SourceFallback Source = "fallback"
	SourceSet      Source = "set"
)

// DefaultMarkers are the files whose presence identifies a game directory,
// in probe order.
var DefaultMarkers = []string{"gameinfo.txt", "gameinfo.gi"}

// ErrEmptyDir is returned by SetGameRoot when given an empty directory.
var ErrEmptyDir = errors.New("game directory is empty")

// Prober reports whether a path exists.
type Prober interface {
	Exists(path string) bool
}

// Options are the inputs to Init.
type Options struct {
	// Input is the file being processed; "" means the working directory.
	Input string
	// GameFlag is an explicit game directory from the command line.
	GameFlag string
	// EnvProject is the project override from the environment.
	EnvProject string
	// Markers overrides DefaultMarkers when non-empty.
	Markers []string
}

// Resolution holds the roots for one process. It is created once by Init
// and shared by the file facade and the module locator.
type Resolution struct {
	mu          sync.RWMutex
	projectRoot string
	gameRoot    string
	source      Source
}

// Init resolves both roots.
func Init(opts Options, probe Prober) *Resolution {
	project := projectDir(opts.Input)

	markers := opts.Markers
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	res := &Resolution{projectRoot: project}
	switch {
	case opts.GameFlag != "":
		res.gameRoot, res.source = absDir(opts.GameFlag), SourceFlag
	case opts.EnvProject != "":
		res.gameRoot, res.source = absDir(opts.EnvProject), SourceEnv
	default:
		if dir, ok := FindGameDir(project, markers, probe); ok {
			res.gameRoot, res.source = dir, SourceMarker
		} else {
			res.gameRoot, res.source = project, SourceFallback
		}
	}
	return res
}

// ProjectRoot returns the directory containing the input file.
func (r *Resolution) ProjectRoot() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.projectRoot
}

// GameRoot returns the current game directory.
func (r *Resolution) GameRoot() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gameRoot
}

// Source reports how the current game root was chosen.
func (r *Resolution) Source() Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.source
}

// SetGameRoot repoints the game root, e.g. at a different mod. An empty
// dir leaves the resolution unchanged and returns ErrEmptyDir.
func (r *Resolution) SetGameRoot(dir string) error {
	if dir == "" {
		return ErrEmptyDir
	}
	game := absDir(dir)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameRoot, r.source = game, SourceSet
	return nil
}

// FindGameDir walks upward from start looking for any of markers. It
// returns the first directory that holds one, normalized, or false once
// the filesystem root has been checked.
func FindGameDir(start string, markers []string, probe Prober) (string, bool) {
	dir, err := filepath.Abs(FixSlashes(start))
	if err != nil {
		return "", false
	}

	for {
		for _, marker := range markers {
			if probe.Exists(filepath.Join(dir, marker)) {
				return NormalizeDir(dir), true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// FixSlashes rewrites both slash styles to the platform separator.
func FixSlashes(path string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return os.PathSeparator
		}
		return r
	}, path)
}

// NormalizeDir fixes slashes and ensures exactly one trailing separator.
// An empty path stays empty.
func NormalizeDir(dir string) string {
	if dir == "" {
		return ""
	}
	sep := string(os.PathSeparator)
	return strings.TrimRight(FixSlashes(dir), sep) + sep
}

// projectDir returns the normalized directory portion of input's absolute
// form. An empty input, or one ending in a separator, names a directory.
func projectDir(input string) string {
	if input == "" {
		return absDir(".")
	}
	fixed := FixSlashes(input)
	if strings.HasSuffix(fixed, string(os.PathSeparator)) {
		return absDir(fixed)
	}
	abs, err := filepath.Abs(fixed)
	if err != nil {
		return NormalizeDir(filepath.Dir(fixed))
	}
	return NormalizeDir(filepath.Dir(abs))
}

func absDir(dir string) string {
	fixed := FixSlashes(dir)
	abs, err := filepath.Abs(fixed)
	if err != nil {
		return NormalizeDir(fixed)
	}
	return NormalizeDir(abs)
}

// Package modloc locates and loads optional native companion modules such
// as the physics engine library.
//
// A module is looked up by logical name ("vphysics"). The platform file
// name is tried first so the dynamic linker's own search rules apply; if
// that fails and a game root is known, a fixed list of layout candidates
// is probed in order:
//
//	<game>/<platform bin>/<file>
//	<game>/bin/<file>
//	<parent of game>/<platform bin>/<file>
//	<parent of game>/bin/<file>
//
// On Linux each candidate's directory is prepended to LD_LIBRARY_PATH
// before it is tried. The change is process-wide and is not undone.
//
// Each logical name moves Unloaded → Loading → Loaded, or ends Exhausted
// once every candidate has failed. Neither end state is ever probed again,
// by Module or by LoadExplicit.
package modloc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gorewood/gameroot/internal/platform"
	"github.com/gorewood/gameroot/internal/roots"
)

// ErrNotFound is returned when no candidate could be loaded.
var ErrNotFound = errors.New("native module not found")

// ErrNoFactory is returned when a loaded module does not export the
// factory symbol.
var ErrNoFactory = errors.New("module exports no interface factory")

const (
	// PhysicsModule is the logical name of the physics engine library.
	PhysicsModule = "vphysics"

	defaultBinDir        = "bin"
	defaultFactorySymbol = "CreateInterface"
	legacyModuleExt      = ".dll"
)

// State is the load state of one logical module.
type State int

const (
	Unloaded State = iota
	Loading
	Loaded
	Exhausted
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Exhausted:
		return "exhausted"
	default:
		return "unloaded"
	}
}

// Platform is the subset of platform services the locator needs.
type Platform interface {
	ModuleFilename(base string) string
	BinSubdir() string
	LibrarySearchVar() string
	Load(path string) (platform.Module, error)
	Symbol(mod platform.Module, name string) (uintptr, error)
	BindFactory(sym uintptr) platform.Factory
	Getenv(key string) string
	Setenv(key, value string) error
}

// Layout overrides the directory and symbol names used while probing.
// Zero values select the platform defaults.
type Layout struct {
	PlatformBinDir string
	BinDir         string
	FactorySymbol  string
}

// Attempt records one load attempt. Err is nil for the attempt that won.
type Attempt struct {
	Path string
	Err  error
}

type module struct {
	state    State
	handle   platform.Module
	path     string
	factory  platform.Factory
	attempts []Attempt
}

// Locator caches loaded modules for the life of the process.
type Locator struct {
	mu      sync.Mutex
	roots   *roots.Resolution
	plat    Platform
	layout  Layout
	trace   func(format string, args ...any)
	modules map[string]*module
}

// Option configures a Locator.
type Option func(*Locator)

// WithTrace sets a printf-style hook that receives every probe step.
func WithTrace(fn func(format string, args ...any)) Option {
	return func(l *Locator) {
		l.trace = fn
	}
}

// New creates a Locator that probes relative to res's game root.
func New(res *roots.Resolution, plat Platform, layout Layout, opts ...Option) *Locator {
	if layout.PlatformBinDir == "" {
		layout.PlatformBinDir = plat.BinSubdir()
	}
	if layout.BinDir == "" {
		layout.BinDir = defaultBinDir
	}
	if layout.FactorySymbol == "" {
		layout.FactorySymbol = defaultFactorySymbol
	}

	l := &Locator{
		roots:   res,
		plat:    plat,
		layout:  layout,
		modules: make(map[string]*module),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Module returns the handle for name, loading it on first use.
func (l *Locator) Module(name string) (platform.Module, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.load(name)
}

// LoadExplicit loads the module name from a caller-supplied path or file
// name, so a file called anything at all can stand in for the logical
// module. An empty name is derived from the file's base name. A bare legacy
// "<name>.dll" is renamed to the platform convention first. If the direct
// load fails and the value was not absolute, the normal probe sequence
// runs. Nothing happens when the module is already loaded, and an
// exhausted module is not tried again.
func (l *Locator) LoadExplicit(name, pathOrName string) error {
	if pathOrName == "" {
		return ErrNotFound
	}
	target := l.platformName(pathOrName)
	if name == "" {
		name = logicalName(target)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	mod := l.module(name)
	switch mod.state {
	case Loaded:
		return nil
	case Exhausted:
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if l.try(mod, target, false) {
		return nil
	}
	if isAbs(pathOrName) {
		return fmt.Errorf("%w: %s", ErrNotFound, pathOrName)
	}
	_, err := l.load(name)
	return err
}

// Factory returns the interface factory exported by name, loading the
// module if needed.
func (l *Locator) Factory(name string) (platform.Factory, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	handle, err := l.load(name)
	if err != nil {
		return nil, err
	}
	mod := l.module(name)
	if mod.factory != nil {
		return mod.factory, nil
	}

	sym, err := l.plat.Symbol(handle, l.layout.FactorySymbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoFactory, err)
	}
	factory := l.plat.BindFactory(sym)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoFactory, l.layout.FactorySymbol)
	}
	mod.factory = factory
	return factory, nil
}

// State reports the load state of name.
func (l *Locator) State(name string) State {
	l.mu.Lock()
	defer l.mu.Unlock()

	if mod, ok := l.modules[key(name)]; ok {
		return mod.state
	}
	return Unloaded
}

// Path returns the path name was loaded from, or "" if it is not loaded.
func (l *Locator) Path(name string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if mod, ok := l.modules[key(name)]; ok && mod.state == Loaded {
		return mod.path
	}
	return ""
}

// Attempts returns every load attempt made for name, in order.
func (l *Locator) Attempts(name string) []Attempt {
	l.mu.Lock()
	defer l.mu.Unlock()

	mod, ok := l.modules[key(name)]
	if !ok {
		return nil
	}
	return append([]Attempt(nil), mod.attempts...)
}

// Candidates returns the full probe order for name without loading
// anything: the bare platform file name, then the layout candidates.
func (l *Locator) Candidates(name string) []string {
	file := l.plat.ModuleFilename(name)
	return append([]string{file}, l.layoutCandidates(file)...)
}

func (l *Locator) load(name string) (platform.Module, error) {
	mod := l.module(name)
	switch mod.state {
	case Loaded:
		return mod.handle, nil
	case Exhausted:
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	mod.state = Loading
	file := l.plat.ModuleFilename(name)
	if l.try(mod, file, false) {
		return mod.handle, nil
	}
	for _, candidate := range l.layoutCandidates(file) {
		if l.try(mod, candidate, true) {
			return mod.handle, nil
		}
	}

	mod.state = Exhausted
	l.tracef("%s: no candidate could be loaded", name)
	return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// try attempts one load, optionally exposing the candidate's directory to
// the dynamic linker first.
func (l *Locator) try(mod *module, path string, prependDir bool) bool {
	if prependDir {
		l.prependSearchDir(filepath.Dir(path))
	}

	l.tracef("trying %s", path)
	handle, err := l.plat.Load(path)
	mod.attempts = append(mod.attempts, Attempt{Path: path, Err: err})
	if err != nil {
		l.tracef("  %v", err)
		return false
	}

	mod.state, mod.handle, mod.path = Loaded, handle, path
	l.tracef("loaded %s", path)
	return true
}

func (l *Locator) layoutCandidates(file string) []string {
	if l.roots == nil {
		return nil
	}
	game := l.roots.GameRoot()
	if game == "" {
		return nil
	}

	modDir := filepath.Clean(game)
	candidates := []string{
		filepath.Join(modDir, l.layout.PlatformBinDir, file),
		filepath.Join(modDir, l.layout.BinDir, file),
	}
	if parent := filepath.Dir(modDir); parent != modDir {
		candidates = append(candidates,
			filepath.Join(parent, l.layout.PlatformBinDir, file),
			filepath.Join(parent, l.layout.BinDir, file),
		)
	}
	return candidates
}

func (l *Locator) prependSearchDir(dir string) {
	variable := l.plat.LibrarySearchVar()
	if variable == "" {
		return
	}
	updated, changed := PrependSearchPath(l.plat.Getenv(variable), dir)
	if !changed {
		return
	}
	if err := l.plat.Setenv(variable, updated); err != nil {
		l.tracef("setting %s: %v", variable, err)
		return
	}
	l.tracef("prepended %s to %s", dir, variable)
}

// platformName maps a bare legacy "<name>.dll" to this platform's file
// name. Paths and names already in the platform convention pass through.
func (l *Locator) platformName(name string) string {
	if strings.ContainsAny(name, `/\`) {
		return name
	}
	ext := filepath.Ext(name)
	if !strings.EqualFold(ext, legacyModuleExt) {
		return name
	}
	mapped := l.plat.ModuleFilename(strings.ToLower(strings.TrimSuffix(name, ext)))
	if strings.EqualFold(filepath.Ext(mapped), legacyModuleExt) {
		return name
	}
	return mapped
}

func (l *Locator) module(name string) *module {
	k := key(name)
	mod, ok := l.modules[k]
	if !ok {
		mod = &module{}
		l.modules[k] = mod
	}
	return mod
}

func (l *Locator) tracef(format string, args ...any) {
	if l.trace != nil {
		l.trace(format, args...)
	}
}

// PrependSearchPath puts dir at the front of a path list unless it is
// already one of the list's segments.
func PrependSearchPath(list, dir string) (string, bool) {
	if dir == "" {
		return list, false
	}
	if list == "" {
		return dir, true
	}
	for _, segment := range filepath.SplitList(list) {
		if segment == dir {
			return list, false
		}
	}
	return dir + string(os.PathListSeparator) + list, true
}

// logicalName is a path's base name without directory or extension.
func logicalName(path string) string {
	base := filepath.Base(roots.FixSlashes(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func key(name string) string {
	return strings.ToLower(name)
}

func isAbs(path string) bool {
	return filepath.IsAbs(path) || strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`)
}

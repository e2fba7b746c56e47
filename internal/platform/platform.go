package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrUnsupported is returned by Load on platforms without a native loader.
var ErrUnsupported = errors.New("native modules are not supported on this platform")

// Module is an opaque handle to a loaded native module.
type Module uintptr

// Factory looks up a named interface exported by a loaded module.
// ok is false when the module does not provide the interface.
type Factory func(name string) (iface uintptr, ok bool)

// Services is the full set of operating-system capabilities.
type Services interface {
	Exists(path string) bool
	Writable(path string) bool
	Chmod(path string, writable bool) error
	ExecutableDir() string
	Getwd() string
	Getenv(key string) string
	Setenv(key, value string) error

	ModuleFilename(base string) string
	BinSubdir() string
	LibrarySearchVar() string
	Load(path string) (Module, error)
	Symbol(mod Module, name string) (uintptr, error)
	BindFactory(sym uintptr) Factory
}

// native is the build-selected implementation. Methods that differ per
// operating system live in the platform_*.go files.
type native struct{}

// Native returns the services for the running operating system.
func Native() Services {
	return native{}
}

// Chmod toggles the owner/group/other write bits.
func (native) Chmod(path string, writable bool) error {
	mode := os.FileMode(0o444)
	if writable {
		mode = 0o666
	}
	return os.Chmod(path, mode)
}

// ExecutableDir returns the directory holding the running binary, or ""
// when the operating system cannot report it.
func (native) ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// Getwd returns the working directory, or "" if it cannot be determined.
func (native) Getwd() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}

func (native) Getenv(key string) string {
	return os.Getenv(key)
}

func (native) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// ModuleFilename appends the platform's shared-library extension.
func (native) ModuleFilename(base string) string {
	return base + moduleExt
}

// BinSubdir is the platform-specific binary directory under a game root.
func (native) BinSubdir() string {
	return binSubdir
}

// LibrarySearchVar names the dynamic-linker search path variable, or ""
// when the platform does not use one.
func (native) LibrarySearchVar() string {
	return librarySearchVar
}

// BindFactory wraps an exported CreateInterface-style symbol.
func (native) BindFactory(sym uintptr) Factory {
	if sym == 0 {
		return nil
	}
	return bindFactory(sym)
}

//go:build darwin || linux

package platform

import (
	"fmt"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"
)

// Exists reports whether path is accessible (access(2) with F_OK).
func (native) Exists(path string) bool {
	return unix.Access(path, unix.F_OK) == nil
}

// Writable reports whether the calling process may write path.
func (native) Writable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

// Load opens a shared library. Bare names follow the dynamic linker's
// default search rules.
func (native) Load(path string) (Module, error) {
	handle, err := purego.Dlopen(path, dlopenFlags)
	if err != nil {
		return 0, fmt.Errorf("dlopen %s: %w", path, err)
	}
	return Module(handle), nil
}

// Symbol resolves an exported symbol in a loaded module.
func (native) Symbol(mod Module, name string) (uintptr, error) {
	sym, err := purego.Dlsym(uintptr(mod), name)
	if err != nil {
		return 0, fmt.Errorf("dlsym %s: %w", name, err)
	}
	return sym, nil
}

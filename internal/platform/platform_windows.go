//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const (
	moduleExt        = ".dll"
	binSubdir        = "bin/x64"
	librarySearchVar = ""
)

func (native) Exists(path string) bool {
	return statExists(path)
}

func (native) Writable(path string) bool {
	return statWritable(path)
}

// Load calls LoadLibrary; Windows searches the application directory and
// PATH for bare names.
func (native) Load(path string) (Module, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, fmt.Errorf("LoadLibrary %s: %w", path, err)
	}
	return Module(handle), nil
}

func (native) Symbol(mod Module, name string) (uintptr, error) {
	proc, err := windows.GetProcAddress(windows.Handle(mod), name)
	if err != nil {
		return 0, fmt.Errorf("GetProcAddress %s: %w", name, err)
	}
	return proc, nil
}

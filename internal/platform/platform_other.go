//go:build !darwin && !linux && !windows

package platform

const (
	moduleExt        = ".so"
	binSubdir        = "bin"
	librarySearchVar = ""
)

func (native) Exists(path string) bool {
	return statExists(path)
}

func (native) Writable(path string) bool {
	return statWritable(path)
}

func (native) Load(string) (Module, error) {
	return 0, ErrUnsupported
}

func (native) Symbol(Module, string) (uintptr, error) {
	return 0, ErrUnsupported
}

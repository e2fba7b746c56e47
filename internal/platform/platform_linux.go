//go:build linux

package platform

import "github.com/ebitengine/purego"

const (
	moduleExt        = ".so"
	binSubdir        = "bin"
	librarySearchVar = "LD_LIBRARY_PATH"

	// glibc's RTLD_DEEPBIND; purego does not export it.
	rtldDeepBind = 0x8

	dlopenFlags = purego.RTLD_NOW | rtldDeepBind
)

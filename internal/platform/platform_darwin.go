//go:build darwin

package platform

import "github.com/ebitengine/purego"

const (
	moduleExt        = ".dylib"
	binSubdir        = "bin/osx64"
	librarySearchVar = ""

	dlopenFlags = purego.RTLD_NOW | purego.RTLD_LOCAL
)

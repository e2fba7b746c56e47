// Package platform provides the operating-system services the rest of
// gameroot depends on: existence and permission probes, executable and
// working-directory lookup, environment access, and native module loading.
//
// # Services
//
// Callers obtain the build-selected implementation once and pass it down:
//
//	plat := platform.Native()
//	name := plat.ModuleFilename("vphysics") // vphysics.so on Linux
//	mod, err := plat.Load(name)
//
// Each consumer declares the narrow interface it needs (roots.Prober,
// fsys.Platform, modloc.Platform); Services is the union of all of them.
//
// # Per-platform behavior
//
// Linux and macOS load modules through purego's dlopen, so no cgo toolchain
// is needed. Windows uses LoadLibrary from golang.org/x/sys/windows. Other
// platforms report ErrUnsupported for every load.
//
// Only Linux names a library search variable (LD_LIBRARY_PATH); on every
// other platform LibrarySearchVar returns "" and the module locator leaves
// the environment alone.
package platform

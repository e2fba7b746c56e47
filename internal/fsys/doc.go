// Package fsys is a small file-access facade that resolves names against
// a symbolic root (a path ID) before touching the disk.
//
// # Path IDs
//
//	GAME, MOD        the resolved game root (synonyms, case-insensitive)
//	EXECUTABLE_PATH  the directory holding the running binary
//	anything else    the current working directory
//
// Absolute names bypass the path ID entirely.
//
// # Not found is not exceptional
//
// A missing file is an expected outcome. Lookups report it as ErrNotFound
// so callers can branch with errors.Is instead of inspecting sentinels:
//
//	data, err := fs.ReadWholeFile("scripts/surfaceproperties.txt", fsys.PathGame, 0, 0)
//	if errors.Is(err, fsys.ErrNotFound) {
//	    // fall back to built-in defaults
//	}
//
// Handle methods are safe on a nil *Handle and return zero counts with
// ErrInvalidHandle.
package fsys

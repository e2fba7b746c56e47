package fsys

import "strings"

// PathID selects the base directory a relative name resolves against.
type PathID string

const (
	PathGame           PathID = "GAME"
	PathMod            PathID = "MOD"
	PathExecutablePath PathID = "EXECUTABLE_PATH"
	PathNone           PathID = ""
)

// isGame reports whether id names the game root (GAME or MOD).
func (id PathID) isGame() bool {
	return strings.EqualFold(string(id), string(PathGame)) ||
		strings.EqualFold(string(id), string(PathMod))
}

func (id PathID) isExecutable() bool {
	return strings.EqualFold(string(id), string(PathExecutablePath))
}

// ParsePathID maps a user-supplied path ID to a PathID. Empty selects
// GAME and "NONE" selects the working directory. Anything else passes
// through and, if unrecognized, resolves like NONE.
func ParsePathID(value string) PathID {
	switch {
	case value == "":
		return PathGame
	case strings.EqualFold(value, "NONE"):
		return PathNone
	default:
		return PathID(value)
	}
}

// Package cmdline accepts the single-dash long parameters older tools in
// this ecosystem pass ("-game dir") alongside gameroot's own flags.
package cmdline

import "strings"

// Legacy lists the long parameters that may be spelled with one dash.
var Legacy = []string{"game", "vproject", "layout"}

// Normalize returns args with every legacy single-dash parameter rewritten
// to its double-dash form. Matching is case-insensitive and covers the
// "-game=dir" spelling. Arguments after a bare "--" are left alone.
func Normalize(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		out = append(out, rewrite(arg))
	}
	return out
}

func rewrite(arg string) string {
	if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
		return arg
	}
	name, value, hasValue := strings.Cut(arg[1:], "=")
	for _, legacy := range Legacy {
		if !strings.EqualFold(name, legacy) {
			continue
		}
		if hasValue {
			return "--" + legacy + "=" + value
		}
		return "--" + legacy
	}
	return arg
}

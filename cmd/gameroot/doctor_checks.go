package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/gameroot/internal/modloc"
	"github.com/gorewood/gameroot/internal/roots"
)

func runRootChecks(sess *session) []checkResult {
	return []checkResult{
		checkGameRootSource(sess),
		checkGameRootExists(sess),
		checkMarker(sess),
		checkLayoutFile(sess),
	}
}

func checkGameRootSource(sess *session) checkResult {
	source := sess.roots.Source()
	if source == roots.SourceFallback {
		return checkResult{
			Name:    "Game Root",
			Status:  checkWarn,
			Message: "no marker found above " + sess.roots.ProjectRoot() + "; using the project root",
			Hint:    "pass --game <dir> or set VPROJECT",
		}
	}
	return checkResult{
		Name:    "Game Root",
		Status:  checkPass,
		Message: sess.roots.GameRoot() + " (" + string(source) + ")",
	}
}

func checkGameRootExists(sess *session) checkResult {
	game := sess.roots.GameRoot()
	info, err := os.Stat(game)
	switch {
	case err != nil:
		return checkResult{
			Name:    "Game Directory",
			Status:  checkFail,
			Message: game + " does not exist",
			Hint:    "check --game and VPROJECT",
		}
	case !info.IsDir():
		return checkResult{
			Name:    "Game Directory",
			Status:  checkFail,
			Message: game + " is not a directory",
		}
	}
	return checkResult{Name: "Game Directory", Status: checkPass, Message: "exists"}
}

func checkMarker(sess *session) checkResult {
	game := sess.roots.GameRoot()
	for _, marker := range sess.layout.Markers {
		if sess.plat.Exists(filepath.Join(game, marker)) {
			return checkResult{Name: "Marker", Status: checkPass, Message: marker + " found"}
		}
	}
	return checkResult{
		Name:    "Marker",
		Status:  checkWarn,
		Message: "none of " + strings.Join(sess.layout.Markers, ", ") + " in the game root",
	}
}

func checkLayoutFile(sess *session) checkResult {
	if sess.layoutPath == "" || !sess.plat.Exists(sess.layoutPath) {
		return checkResult{Name: "Layout", Status: checkPass, Message: "built-in defaults"}
	}
	return checkResult{Name: "Layout", Status: checkPass, Message: sess.layoutPath}
}

func runModuleChecks(sess *session) []checkResult {
	return []checkResult{
		checkSearchVariable(sess),
		checkModuleLoads(sess),
	}
}

func checkSearchVariable(sess *session) checkResult {
	variable := sess.plat.LibrarySearchVar()
	if variable == "" {
		return checkResult{Name: "Search Path", Status: checkPass, Message: "not used on this platform"}
	}
	value := sess.plat.Getenv(variable)
	if value == "" {
		return checkResult{Name: "Search Path", Status: checkPass, Message: variable + " is empty"}
	}
	return checkResult{Name: "Search Path", Status: checkPass, Message: variable + "=" + value}
}

func checkModuleLoads(sess *session) checkResult {
	name := sess.layout.Module
	if _, err := sess.modules.Module(name); err != nil {
		status := checkFail
		if errors.Is(err, modloc.ErrNotFound) {
			status = checkWarn
		}
		return checkResult{
			Name:    "Native Module",
			Status:  status,
			Message: name + " not loadable from any of " + strings.Join(sess.modules.Candidates(name), ", "),
			Hint:    "run 'gameroot module -v' to see each loader error",
		}
	}
	return checkResult{
		Name:    "Native Module",
		Status:  checkPass,
		Message: name + " loaded from " + sess.modules.Path(name),
	}
}

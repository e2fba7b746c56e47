package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gorewood/gameroot/internal/config"
	"github.com/gorewood/gameroot/internal/fsys"
	"github.com/gorewood/gameroot/internal/modloc"
	"github.com/gorewood/gameroot/internal/output"
	"github.com/gorewood/gameroot/internal/platform"
	"github.com/gorewood/gameroot/internal/roots"
)

// newPlatform is swapped by tests that must not dlopen real files.
var newPlatform = platform.Native

// session holds the components one command invocation works with.
type session struct {
	printer    *output.Printer
	plat       platform.Services
	layout     config.Layout
	layoutPath string
	roots      *roots.Resolution
	files      *fsys.FileSystem
	modules    *modloc.Locator
}

// newSession resolves roots and wires the file facade and the module
// locator from flags, the environment and the layout file.
func newSession(cmd *cobra.Command) (*session, error) {
	printer := newPrinter(cmd)

	env, err := config.ParseEnv()
	if err != nil {
		return nil, output.NewSystemErrorWithCause(err.Error(), err)
	}

	layoutPath := firstNonEmpty(persistentFlag(cmd, "layout"), env.Layout, config.UserFiles().Layout)
	layout, err := config.LoadLayout(layoutPath)
	if err != nil {
		return nil, output.NewSystemErrorWithCause(err.Error(), err)
	}
	if env.Module != "" {
		layout.Module = env.Module
	}

	plat := newPlatform()
	res := roots.Init(roots.Options{
		Input:      persistentFlag(cmd, "input"),
		GameFlag:   persistentFlag(cmd, "game"),
		EnvProject: firstNonEmpty(persistentFlag(cmd, "vproject"), env.Project),
		Markers:    layout.Markers,
	}, plat)
	printer.Debug("project root %s", res.ProjectRoot())
	printer.Debug("game root %s (%s)", res.GameRoot(), res.Source())

	return &session{
		printer:    printer,
		plat:       plat,
		layout:     layout,
		layoutPath: layoutPath,
		roots:      res,
		files:      fsys.New(res, plat),
		modules:    modloc.New(res, plat, layout.Locator(), modloc.WithTrace(printer.Debug)),
	}, nil
}

// fail prints err and returns it for cobra. Errors that are not already
// *output.ExitError are classified first.
func fail(printer *output.Printer, err error) error {
	err = classify(err)
	printer.Error(err)
	return err
}

// classify maps domain errors onto exit codes: missing files and modules
// are the caller's problem, everything else is a system failure.
func classify(err error) error {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	switch {
	case errors.Is(err, fsys.ErrNotFound),
		errors.Is(err, fsys.ErrInvalidHandle),
		errors.Is(err, modloc.ErrNotFound),
		errors.Is(err, modloc.ErrNoFactory),
		errors.Is(err, roots.ErrEmptyDir):
		return output.NewUserErrorWithCause(err.Error(), err)
	default:
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

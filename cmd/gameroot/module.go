package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/gameroot/internal/modloc"
	"github.com/gorewood/gameroot/internal/output"
)

type moduleFlags struct {
	explicit string
	dryRun   bool
	iface    string
}

type attemptResult struct {
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
}

type moduleResult struct {
	Name       string          `json:"name"`
	State      string          `json:"state"`
	Path       string          `json:"path,omitempty"`
	Candidates []string        `json:"candidates"`
	Attempts   []attemptResult `json:"attempts,omitempty"`
	Factory    *bool           `json:"factory,omitempty"`
	Interface  string          `json:"interface,omitempty"`
	Provided   *bool           `json:"provided,omitempty"`
}

func newModuleCmd() *cobra.Command {
	flags := &moduleFlags{}
	cmd := &cobra.Command{
		Use:   "module [name]",
		Short: "Locate and load a native module",
		Long: `Locate a native module (default vphysics) and report every path tried.

The platform file name (vphysics.so, vphysics.dylib, vphysics.dll) is
tried first so the dynamic linker's own search applies, then:

  <game>/<platform bin>/<file>
  <game>/bin/<file>
  <parent of game>/<platform bin>/<file>
  <parent of game>/bin/<file>

On Linux each candidate's directory is prepended to LD_LIBRARY_PATH.

--explicit tries a path or file name first; a legacy "vphysics.dll" is
renamed to this platform's convention. --interface asks the loaded
module's factory for an interface version.

Examples:
  gameroot module --dry-run
  gameroot module -v
  gameroot module --explicit /opt/engine/bin/vphysics.so --interface VPhysics031`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runModule(cmd, name, flags)
		},
	}
	cmd.Flags().StringVar(&flags.explicit, "explicit", "", "Path or file name to try before the probe order")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "List candidates without loading anything")
	cmd.Flags().StringVar(&flags.iface, "interface", "", "Interface version to request from the module's factory")
	return cmd
}

func runModule(cmd *cobra.Command, name string, flags *moduleFlags) error {
	sess, err := newSession(cmd)
	if err != nil {
		return fail(newPrinter(cmd), err)
	}
	if name == "" {
		name = sess.layout.Module
	}

	result := &moduleResult{Name: name, Candidates: sess.modules.Candidates(name)}
	var loadErr error
	if !flags.dryRun {
		loadErr = loadModule(sess, name, flags, result)
	}
	result.State = sess.modules.State(name).String()
	result.Path = sess.modules.Path(name)
	for _, attempt := range sess.modules.Attempts(name) {
		entry := attemptResult{Path: attempt.Path}
		if attempt.Err != nil {
			entry.Error = attempt.Err.Error()
		}
		result.Attempts = append(result.Attempts, entry)
	}

	if loadErr != nil {
		if !sess.printer.IsJSON() {
			printModule(sess.printer, result)
		}
		return fail(sess.printer, loadErr)
	}
	if sess.printer.IsJSON() {
		return sess.printer.WriteJSON(result)
	}
	printModule(sess.printer, result)
	return nil
}

// loadModule loads name and, if asked, queries its factory. Not finding
// the factory symbol is reported in result rather than as an error unless
// an interface was requested.
func loadModule(sess *session, name string, flags *moduleFlags, result *moduleResult) error {
	if flags.explicit != "" {
		if err := sess.modules.LoadExplicit(name, flags.explicit); err != nil {
			return err
		}
	} else if _, err := sess.modules.Module(name); err != nil {
		return err
	}

	factory, err := sess.modules.Factory(name)
	hasFactory := err == nil
	result.Factory = &hasFactory
	if flags.iface == "" {
		if err != nil && !errors.Is(err, modloc.ErrNoFactory) {
			return err
		}
		return nil
	}
	if err != nil {
		return err
	}

	_, ok := factory(flags.iface)
	result.Interface = flags.iface
	result.Provided = &ok
	if !ok {
		return output.NewUserError(name + " does not provide " + flags.iface)
	}
	return nil
}

func printModule(printer *output.Printer, result *moduleResult) {
	printer.KeyValue("module", result.Name)
	printer.KeyValue("state", result.State)
	if result.Path != "" {
		printer.KeyValue("loaded from", result.Path)
	}
	if result.Factory != nil {
		printer.KeyValue("factory", strconv.FormatBool(*result.Factory))
	}
	if result.Provided != nil {
		printer.KeyValue(result.Interface, strconv.FormatBool(*result.Provided))
	}
	printer.Println()

	if len(result.Attempts) == 0 {
		rows := make([][]string, 0, len(result.Candidates))
		for i, candidate := range result.Candidates {
			rows = append(rows, []string{strconv.Itoa(i + 1), candidate})
		}
		printer.Table([]string{"#", "candidate"}, rows)
		return
	}

	rows := make([][]string, 0, len(result.Attempts))
	for i, attempt := range result.Attempts {
		status := "loaded"
		if attempt.Error != "" {
			status = attempt.Error
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), attempt.Path, status})
	}
	printer.Table([]string{"#", "tried", "result"}, rows)
}

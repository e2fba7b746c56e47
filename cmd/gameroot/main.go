// Package main provides the entry point for the gameroot CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/gameroot/internal/cmdline"
	"github.com/gorewood/gameroot/internal/config"
	"github.com/gorewood/gameroot/internal/envfile"
	"github.com/gorewood/gameroot/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// useColor applies --color to the stdout TTY check.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

// persistentFlag returns the string value of a flag defined on cmd or
// on the root, or "" if neither defines it.
func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// newPrinter builds the printer every command writes through.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr()).
		WithVerbose(persistentFlag(cmd, "verbose") == "true")
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(cmdline.Normalize(args))
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the gameroot CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gameroot",
		Short: "Locate game content and native modules",
		Long: `gameroot answers where a content tool's files live.

It finds the game directory for an input file (--game, then VPROJECT,
then the nearest ancestor holding gameinfo.txt or gameinfo.gi), resolves
GAME, MOD and EXECUTABLE_PATH relative names against it, and locates the
native physics module the way the engine's tools do.

Legacy single-dash parameters (-game, -vproject, -layout) are accepted.
All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'gameroot --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := loadEnvFiles(); err != nil {
			newPrinter(cmd).Warn("%v", err)
		}
		return nil
	}

	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("color", "auto", "Colorize output: auto, always, never")
	flags.String("game", "", "Game directory (overrides VPROJECT and marker search)")
	flags.String("vproject", "", "Game directory, used in place of VPROJECT")
	flags.String("input", "", "Input file whose directory is the project root (default: working directory)")
	flags.String("layout", "", "Layout file (default: <config dir>/layout.yaml)")
	flags.BoolP("verbose", "v", false, "Trace resolution and module probing to stderr")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins.
//
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. <config dir>/env
func loadEnvFiles() error {
	paths := []string{".env.local", ".env"}
	if env := config.UserFiles().Env; env != "" {
		paths = append(paths, env)
	}
	return envfile.LoadAll(paths...)
}

func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "paths", Title: "Path Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "files", Title: "File Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "modules", Title: "Module Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newRootsCmd(), "paths")
	addGroupedCommand(cmd, newResolveCmd(), "paths")

	addGroupedCommand(cmd, newStatCmd(), "files")
	addGroupedCommand(cmd, newCatCmd(), "files")
	addGroupedCommand(cmd, newWriteCmd(), "files")
	addGroupedCommand(cmd, newChmodCmd(), "files")

	addGroupedCommand(cmd, newModuleCmd(), "modules")

	addGroupedCommand(cmd, newDoctorCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

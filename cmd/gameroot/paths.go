package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/gameroot/internal/fsys"
)

func newRootsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "Show the project root and game root",
		Long: `Show the project root, the game root and the rule that chose it.

Sources:
  flag      --game (or -game)
  env       --vproject or the VPROJECT environment variable
  marker    nearest ancestor holding gameinfo.txt or gameinfo.gi
  fallback  the project root itself

Examples:
  gameroot roots --input models/props/crate.qc
  gameroot -game /games/hl2 roots --json`,
		Args: cobra.NoArgs,
		RunE: runRoots,
	}
}

func runRoots(cmd *cobra.Command, _ []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return fail(newPrinter(cmd), err)
	}
	printer := sess.printer

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"project_root": sess.roots.ProjectRoot(),
			"game_root":    sess.roots.GameRoot(),
			"source":       sess.roots.Source(),
		})
	}
	printer.KeyValue("project root", sess.roots.ProjectRoot())
	printer.KeyValue("game root", sess.roots.GameRoot())
	printer.KeyValue("source", string(sess.roots.Source()))
	return nil
}

func newResolveCmd() *cobra.Command {
	var pathID string
	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a name against a path ID",
		Long: `Resolve a relative name to an absolute path.

Path IDs:
  GAME, MOD         the game root
  EXECUTABLE_PATH   the directory holding this executable
  NONE              the working directory

Absolute names are printed unchanged.

Examples:
  gameroot resolve models/props/crate.mdl
  gameroot resolve --path-id EXECUTABLE_PATH bin/vphysics.so`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], fsys.ParsePathID(pathID))
		},
	}
	addPathIDFlag(cmd, &pathID)
	return cmd
}

func runResolve(cmd *cobra.Command, name string, id fsys.PathID) error {
	sess, err := newSession(cmd)
	if err != nil {
		return fail(newPrinter(cmd), err)
	}

	path, err := sess.files.ResolvePath(name, id)
	if err != nil {
		return fail(sess.printer, err)
	}
	if sess.printer.IsJSON() {
		return sess.printer.WriteJSON(map[string]any{"name": name, "path_id": id, "path": path})
	}
	sess.printer.Println(path)
	return nil
}

func addPathIDFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "path-id", "GAME", "Base directory: GAME, MOD, EXECUTABLE_PATH or NONE")
}

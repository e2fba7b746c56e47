package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/gorewood/gameroot/internal/fsys"
	"github.com/gorewood/gameroot/internal/output"
)

// --- stat ---

type statResult struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
	Size     int64  `json:"size"`
	Modified int64  `json:"modified"`
}

func newStatCmd() *cobra.Command {
	var pathID string
	cmd := &cobra.Command{
		Use:   "stat <name>",
		Short: "Show existence, writability, size and modification time",
		Long: `Show what gameroot knows about a file.

Size is 0 and modified is -1 when the file cannot be opened.

Examples:
  gameroot stat gameinfo.txt
  gameroot stat --path-id NONE ./crate.smd --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(cmd, args[0], fsys.ParsePathID(pathID))
		},
	}
	addPathIDFlag(cmd, &pathID)
	return cmd
}

func runStat(cmd *cobra.Command, name string, id fsys.PathID) error {
	sess, err := newSession(cmd)
	if err != nil {
		return fail(newPrinter(cmd), err)
	}
	path, err := sess.files.ResolvePath(name, id)
	if err != nil {
		return fail(sess.printer, err)
	}

	result := statResult{
		Name:     name,
		Path:     path,
		Exists:   sess.files.FileExists(name, id),
		Writable: sess.files.IsWritable(name, id),
		Size:     sess.files.Size(name, id),
		Modified: sess.files.ModifiedUnix(name, id),
	}
	if sess.printer.IsJSON() {
		return sess.printer.WriteJSON(result)
	}

	printer := sess.printer
	printer.KeyValue("path", result.Path)
	printer.KeyValue("exists", strconv.FormatBool(result.Exists))
	printer.KeyValue("writable", strconv.FormatBool(result.Writable))
	printer.KeyValue("size", strconv.FormatInt(result.Size, 10))
	if result.Modified >= 0 {
		printer.KeyValue("modified", time.Unix(result.Modified, 0).Format(time.RFC3339))
	}
	return nil
}

// --- cat ---

type catFlags struct {
	pathID string
	max    int64
	start  int64
}

func newCatCmd() *cobra.Command {
	flags := &catFlags{}
	cmd := &cobra.Command{
		Use:   "cat <name>",
		Short: "Print a file resolved against a path ID",
		Long: `Read a whole file, or a window of it, and write it to stdout.

--start is honored only when it lies inside the file. --max caps the
number of bytes read. An empty file is an error.

Examples:
  gameroot cat gameinfo.txt
  gameroot cat --start 4 --max 4 models/crate.mdl | xxd
  gameroot cat scripts/surfaceproperties.txt --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(cmd, args[0], flags)
		},
	}
	addPathIDFlag(cmd, &flags.pathID)
	cmd.Flags().Int64Var(&flags.max, "max", 0, "Maximum bytes to read (0 = whole file)")
	cmd.Flags().Int64Var(&flags.start, "start", 0, "Byte offset to start from")
	return cmd
}

func runCat(cmd *cobra.Command, name string, flags *catFlags) error {
	sess, err := newSession(cmd)
	if err != nil {
		return fail(newPrinter(cmd), err)
	}
	id := fsys.ParsePathID(flags.pathID)

	data, err := sess.files.ReadWholeFile(name, id, flags.max, flags.start)
	if err != nil {
		return fail(sess.printer, err)
	}
	if !sess.printer.IsJSON() {
		sess.printer.Raw(data)
		return nil
	}

	path, _ := sess.files.ResolvePath(name, id)
	encoding, content := "utf8", string(data)
	if !utf8.Valid(data) {
		encoding, content = "base64", base64.StdEncoding.EncodeToString(data)
	}
	return sess.printer.WriteJSON(map[string]any{
		"path":     path,
		"length":   len(data),
		"encoding": encoding,
		"content":  content,
	})
}

// --- write ---

func newWriteCmd() *cobra.Command {
	var pathID string
	cmd := &cobra.Command{
		Use:   "write <name>",
		Short: "Replace a file with stdin",
		Long: `Truncate a file and write stdin to it.

A read-only target is refused with exit code 3; make it writable with
'gameroot chmod --writable' first.

Examples:
  echo '"GameInfo" {}' | gameroot write gameinfo.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, args[0], fsys.ParsePathID(pathID))
		},
	}
	addPathIDFlag(cmd, &pathID)
	return cmd
}

func runWrite(cmd *cobra.Command, name string, id fsys.PathID) error {
	sess, err := newSession(cmd)
	if err != nil {
		return fail(newPrinter(cmd), err)
	}
	path, err := sess.files.ResolvePath(name, id)
	if err != nil {
		return fail(sess.printer, err)
	}
	if sess.files.FileExists(name, id) && !sess.files.IsWritable(name, id) {
		return fail(sess.printer, output.NewConflictError(path+" is read-only"))
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fail(sess.printer, fmt.Errorf("reading stdin: %w", err))
	}
	if err := sess.files.WriteWholeFile(name, id, data); err != nil {
		return fail(sess.printer, err)
	}

	return sess.printer.Success(map[string]any{
		"message": fmt.Sprintf("wrote %d bytes to %s", len(data), path),
		"path":    path,
		"bytes":   len(data),
	})
}

// --- chmod ---

func newChmodCmd() *cobra.Command {
	var (
		pathID   string
		writable bool
	)
	cmd := &cobra.Command{
		Use:   "chmod <name>",
		Short: "Make a file writable or read-only",
		Long: `Set a file to 0666 with --writable, or to 0444 without it.

Examples:
  gameroot chmod --writable materials/crate.vmt
  gameroot chmod materials/crate.vmt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChmod(cmd, args[0], fsys.ParsePathID(pathID), writable)
		},
	}
	addPathIDFlag(cmd, &pathID)
	cmd.Flags().BoolVar(&writable, "writable", false, "Make the file writable instead of read-only")
	return cmd
}

func runChmod(cmd *cobra.Command, name string, id fsys.PathID, writable bool) error {
	sess, err := newSession(cmd)
	if err != nil {
		return fail(newPrinter(cmd), err)
	}
	if err := sess.files.SetWritable(name, writable, id); err != nil {
		return fail(sess.printer, err)
	}

	path, _ := sess.files.ResolvePath(name, id)
	mode := "read-only"
	if writable {
		mode = "writable"
	}
	return sess.printer.Success(map[string]any{
		"message":  fmt.Sprintf("%s is now %s", path, mode),
		"path":     path,
		"writable": writable,
	})
}

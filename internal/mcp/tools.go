package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gameroot/internal/fsys"
	"github.com/gorewood/gameroot/internal/modloc"
	"github.com/gorewood/gameroot/internal/roots"
)

// defaultReadLimit caps read_file when the caller sets no max_bytes.
const defaultReadLimit = 1 << 20

// --- Roots tool ---

// RootsInput is the input for the roots tool (no parameters needed).
type RootsInput struct{}

// RootsOutput is the output for the roots tool.
type RootsOutput struct {
	ProjectRoot string `json:"project_root" jsonschema:"directory holding the input file"`
	GameRoot    string `json:"game_root"    jsonschema:"directory GAME and MOD paths resolve against"`
	Source      string `json:"source"       jsonschema:"rule that chose the game root: flag, env, marker, fallback or set"`
}

func handleRoots(res *roots.Resolution) mcp.ToolHandlerFor[RootsInput, RootsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ RootsInput) (*mcp.CallToolResult, RootsOutput, error) {
		return nil, RootsOutput{
			ProjectRoot: res.ProjectRoot(),
			GameRoot:    res.GameRoot(),
			Source:      string(res.Source()),
		}, nil
	}
}

// --- Set game tool ---

// SetGameInput is the input for the set_game tool.
type SetGameInput struct {
	Dir string `json:"dir" jsonschema:"new game root; relative paths are taken from the server's working directory"`
}

func handleSetGame(res *roots.Resolution) mcp.ToolHandlerFor[SetGameInput, RootsOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SetGameInput) (*mcp.CallToolResult, RootsOutput, error) {
		if err := res.SetGameRoot(input.Dir); err != nil {
			return nil, RootsOutput{}, fmt.Errorf("setting game root: %w", err)
		}
		return handleRoots(res)(ctx, req, RootsInput{})
	}
}

// --- Resolve tool ---

// PathInput names a file relative to a path ID.
type PathInput struct {
	Name   string `json:"name"              jsonschema:"file name, relative or absolute"`
	PathID string `json:"path_id,omitempty" jsonschema:"GAME (default), MOD, EXECUTABLE_PATH or NONE"`
}

// ResolveOutput is the output for the resolve_path tool.
type ResolveOutput struct {
	Path string `json:"path" jsonschema:"absolute resolved path"`
}

func handleResolvePath(files *fsys.FileSystem) mcp.ToolHandlerFor[PathInput, ResolveOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PathInput) (*mcp.CallToolResult, ResolveOutput, error) {
		path, err := files.ResolvePath(input.Name, fsys.ParsePathID(input.PathID))
		if err != nil {
			return nil, ResolveOutput{}, fmt.Errorf("resolving %q: %w", input.Name, err)
		}
		return nil, ResolveOutput{Path: path}, nil
	}
}

// --- File info tool ---

// FileInfoOutput is the output for the file_info tool.
type FileInfoOutput struct {
	Path     string `json:"path"               jsonschema:"absolute resolved path"`
	Exists   bool   `json:"exists"             jsonschema:"whether the path exists"`
	Writable bool   `json:"writable"           jsonschema:"whether this process may write the path"`
	Size     int64  `json:"size"               jsonschema:"size in bytes, 0 when unreadable"`
	Modified string `json:"modified,omitempty" jsonschema:"modification time (RFC3339)"`
}

func handleFileInfo(files *fsys.FileSystem) mcp.ToolHandlerFor[PathInput, FileInfoOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PathInput) (*mcp.CallToolResult, FileInfoOutput, error) {
		id := fsys.ParsePathID(input.PathID)
		path, err := files.ResolvePath(input.Name, id)
		if err != nil {
			return nil, FileInfoOutput{}, fmt.Errorf("resolving %q: %w", input.Name, err)
		}

		out := FileInfoOutput{
			Path:     path,
			Exists:   files.FileExists(input.Name, id),
			Writable: files.IsWritable(input.Name, id),
			Size:     files.Size(input.Name, id),
		}
		if modTime, err := files.ModifiedTime(input.Name, id); err == nil {
			out.Modified = modTime.UTC().Format(time.RFC3339)
		}
		return nil, out, nil
	}
}

// --- Read tool ---

// ReadInput is the input for the read_file tool.
type ReadInput struct {
	Name      string `json:"name"                 jsonschema:"file name, relative or absolute"`
	PathID    string `json:"path_id,omitempty"    jsonschema:"GAME (default), MOD, EXECUTABLE_PATH or NONE"`
	MaxBytes  int64  `json:"max_bytes,omitempty"  jsonschema:"maximum bytes to return (default 1 MiB)"`
	StartByte int64  `json:"start_byte,omitempty" jsonschema:"offset to start reading from; ignored unless inside the file"`
}

// ReadOutput is the output for the read_file tool.
type ReadOutput struct {
	Path     string `json:"path"     jsonschema:"absolute resolved path"`
	Size     int64  `json:"size"     jsonschema:"total file size in bytes"`
	Length   int    `json:"length"   jsonschema:"number of bytes returned"`
	Encoding string `json:"encoding" jsonschema:"utf8 or base64"`
	Content  string `json:"content"  jsonschema:"file content"`
}

func handleReadFile(files *fsys.FileSystem) mcp.ToolHandlerFor[ReadInput, ReadOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ReadInput) (*mcp.CallToolResult, ReadOutput, error) {
		id := fsys.ParsePathID(input.PathID)
		path, err := files.ResolvePath(input.Name, id)
		if err != nil {
			return nil, ReadOutput{}, fmt.Errorf("resolving %q: %w", input.Name, err)
		}

		limit := input.MaxBytes
		if limit <= 0 {
			limit = defaultReadLimit
		}
		data, err := files.ReadWholeFile(input.Name, id, limit, input.StartByte)
		if err != nil {
			return nil, ReadOutput{}, fmt.Errorf("reading %s: %w", path, err)
		}

		out := ReadOutput{
			Path:     path,
			Size:     files.Size(input.Name, id),
			Length:   len(data),
			Encoding: "utf8",
			Content:  string(data),
		}
		if !utf8.Valid(data) {
			out.Encoding = "base64"
			out.Content = base64.StdEncoding.EncodeToString(data)
		}
		return nil, out, nil
	}
}

// --- Locate module tool ---

// LocateInput is the input for the locate_module tool.
type LocateInput struct {
	Name     string `json:"name,omitempty"     jsonschema:"logical module name (default vphysics)"`
	Explicit string `json:"explicit,omitempty" jsonschema:"path or file name to try before the normal probe order"`
	DryRun   bool   `json:"dry_run,omitempty"  jsonschema:"list candidates without loading anything"`
}

// AttemptSummary is one load attempt.
type AttemptSummary struct {
	Path  string `json:"path"            jsonschema:"candidate path"`
	Error string `json:"error,omitempty" jsonschema:"loader error; empty for the attempt that succeeded"`
}

// LocateOutput is the output for the locate_module tool.
type LocateOutput struct {
	Name       string           `json:"name"               jsonschema:"logical module name"`
	State      string           `json:"state"              jsonschema:"unloaded, loading, loaded or exhausted"`
	Path       string           `json:"path,omitempty"     jsonschema:"path the module was loaded from"`
	Candidates []string         `json:"candidates"         jsonschema:"probe order"`
	Attempts   []AttemptSummary `json:"attempts,omitempty" jsonschema:"load attempts in order"`
}

func handleLocateModule(locator *modloc.Locator, defaultName string) mcp.ToolHandlerFor[LocateInput, LocateOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input LocateInput) (*mcp.CallToolResult, LocateOutput, error) {
		name := input.Name
		switch {
		case name != "":
		case defaultName != "":
			name = defaultName
		default:
			name = modloc.PhysicsModule
		}

		out := LocateOutput{Name: name, Candidates: locator.Candidates(name)}
		if !input.DryRun {
			var err error
			if input.Explicit != "" {
				err = locator.LoadExplicit(name, input.Explicit)
			} else {
				_, err = locator.Module(name)
			}
			if err != nil && !errors.Is(err, modloc.ErrNotFound) {
				return nil, LocateOutput{}, fmt.Errorf("loading %s: %w", name, err)
			}
		}

		out.State = locator.State(name).String()
		out.Path = locator.Path(name)
		for _, attempt := range locator.Attempts(name) {
			summary := AttemptSummary{Path: attempt.Path}
			if attempt.Err != nil {
				summary.Error = attempt.Err.Error()
			}
			out.Attempts = append(out.Attempts, summary)
		}
		return nil, out, nil
	}
}

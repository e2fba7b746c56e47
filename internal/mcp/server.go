// Package mcp exposes gameroot's path resolution over the Model Context
// Protocol so an agent can ask where a game's files and native modules
// live.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gameroot/internal/fsys"
	"github.com/gorewood/gameroot/internal/modloc"
	"github.com/gorewood/gameroot/internal/roots"
)

// Deps are the process-wide components the tools operate on.
type Deps struct {
	Roots   *roots.Resolution
	Files   *fsys.FileSystem
	Modules *modloc.Locator
	// Module is the logical module name locate_module uses by default.
	Module string
}

// NewServer creates an MCP server with every gameroot tool registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gameroot",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// stateAnnotations marks tools that change process state (the game root,
// loaded modules, the library search variable) without touching files.
func stateAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		IdempotentHint:  true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "roots",
		Description: "Show the project root, the game root and which rule chose the game root (flag, env, marker, fallback).",
		Annotations: readOnlyAnnotations(),
	}, handleRoots(deps.Roots))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_game",
		Description: "Point the game root at another directory for the rest of the session. Later path resolution and module probing use it; modules already loaded stay loaded.",
		Annotations: stateAnnotations(),
	}, handleSetGame(deps.Roots))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_path",
		Description: "Resolve a relative name against a path ID: GAME (the default when path_id is omitted), MOD, EXECUTABLE_PATH, or NONE for the working directory. Absolute names are returned unchanged.",
		Annotations: readOnlyAnnotations(),
	}, handleResolvePath(deps.Files))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "file_info",
		Description: "Report whether a file exists, whether it is writable, its size and its modification time.",
		Annotations: readOnlyAnnotations(),
	}, handleFileInfo(deps.Files))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_file",
		Description: "Read a file resolved against a path ID. Supports a start offset and a byte cap; binary content is returned base64 encoded.",
		Annotations: readOnlyAnnotations(),
	}, handleReadFile(deps.Files))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "locate_module",
		Description: "Locate and load a native module (default vphysics) and report every candidate tried. With dry_run only the probe order is returned.",
		Annotations: stateAnnotations(),
	}, handleLocateModule(deps.Modules, deps.Module))
}

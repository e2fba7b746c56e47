package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	gamerootmcp "github.com/gorewood/gameroot/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run gameroot as a Model Context Protocol (MCP) server over stdio.

Roots are resolved once at startup from the same flags and environment
as every other command.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "gameroot": {
        "command": "gameroot",
        "args": ["-game", "/games/hl2", "serve"]
      }
    }
  }

Available tools: roots, set_game, resolve_path, file_info, read_file, locate_module`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return fail(newPrinter(cmd), err)
			}
			server := gamerootmcp.NewServer(buildVersion(), gamerootmcp.Deps{
				Roots:   sess.roots,
				Files:   sess.files,
				Modules: sess.modules,
				Module:  sess.layout.Module,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

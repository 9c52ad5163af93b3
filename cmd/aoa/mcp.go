package main

import (
	"fmt"
	"os"

	"github.com/unowned-ai/aoa/pkg/mcp"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the AOA MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that lets an assistant read and write your
daily logs as the user stored on this machine.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\aoa\aoa.db
- macOS: ~/Library/Application Support/aoa/aoa.db
- Linux: ~/.local/share/aoa/aoa.db

Example:
  aoa mcp
  aoa mcp --api https://aoa.example.com --db ~/aoa.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewAOAMCPServer(dbPath, walMode, syncMode)
		if err != nil {
			return err
		}
		defer srv.Close()

		client, err := newClient()
		if err != nil {
			return err
		}
		srv.RegisterAll(mcp.Deps{
			API:   client,
			Store: srv.Store(),
			Log:   logger.With("component", "mcp"),
		})

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "AOA MCP server started. DB: %s (WAL: %t, Sync: %s) API: %s\n", srv.DbPath, walMode, syncMode, client.BaseURL())
		fmt.Fprintln(os.Stderr, "Available tools: ping, whoami, get_today, checkin, checkout, list_logs, reading_list, link_dumps")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		return srv.Start()
	},
}

func initMCPCmd() {
	rootCmd.AddCommand(mcpCmd)
}


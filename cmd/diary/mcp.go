// ABOUTME: MCP server command implementation for diary.
// ABOUTME: Starts the MCP server in stdio mode over a fresh session journal.
package main

import (
	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/journal"
	mcppkg "github.com/2389-research/diary/internal/mcp"
	"github.com/2389-research/diary/internal/storage"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The server keeps an in-memory journal for the lifetime of the process.
Agents add entries and extract phone numbers through MCP tools over stdio.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	opts := []mcppkg.ServerOption{mcppkg.WithLogger(globalLogger)}
	if globalConfig.HasRemote() {
		remote := storage.NewRemoteClient(globalConfig.Remote.APIURL, globalConfig.Remote.APIKey, globalConfig.Remote.TeamID)
		opts = append(opts, mcppkg.WithRemoteClient(remote))
	}

	server, err := mcppkg.NewServer(journal.New(), version, opts...)
	if err != nil {
		return err
	}

	return server.Serve(cmd.Context())
}

// Package mcp holds the commands that expose the task analyzer over MCP.
package mcp

import "github.com/spf13/cobra"

// Cmd is the MCP command group.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage the task analyzer MCP interface",
}

func init() {
	Cmd.AddCommand(serveCmd)
}

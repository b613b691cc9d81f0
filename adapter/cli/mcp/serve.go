package mcp

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	mcpinternal "github.com/DHariharanD/Smart-Task-Analyser/internal/mcp"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the task tools, resources and prompts over MCP streamable HTTP.

Set MCP_AUTH_TOKEN to require a bearer token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := cli.LoadConfig()
		if err != nil {
			return err
		}
		if addr != "" {
			copied := *cfg
			copied.MCPAddr = addr
			cfg = &copied
		}

		app, err := cli.RequireApp(ctx)
		if err != nil {
			return err
		}

		err = mcpinternal.Serve(ctx, cfg, app, cli.Logger())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default MCP_ADDR)")
}

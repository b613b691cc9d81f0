package mcp

import (
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

// ToolDependencies provides handlers and context for MCP tools.
type ToolDependencies struct {
	App *cli.App
	// Health is optional; cli.health falls back to a wiring check without it.
	Health *observability.HealthRegistry
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	t := toolset{app: deps.App, health: deps.Health}
	registerCoreTools(srv, t)
	registerAnalysisTools(srv, t)
	registerTaskTools(srv, t)
	return nil
}

// toolset holds the tool handlers so they can be called without a transport.
type toolset struct {
	app    *cli.App
	health *observability.HealthRegistry
}

func (t toolset) requireStore(what string) error {
	if t.app == nil || t.app.Container == nil {
		return errors.New(what + " requires the task store")
	}
	return nil
}

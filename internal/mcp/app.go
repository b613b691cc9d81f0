package mcp

import (
	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	mcplocal "github.com/DHariharanD/Smart-Task-Analyser/adapter/mcp"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	return cli.NewApp(container)
}

// dependenciesFor exposes the container's health registry to the tools when
// the app is store-backed.
func dependenciesFor(cliApp *cli.App) mcplocal.ToolDependencies {
	deps := mcplocal.ToolDependencies{App: cliApp}
	if cliApp.Container != nil {
		deps.Health = cliApp.Container.Health
	}
	return deps
}

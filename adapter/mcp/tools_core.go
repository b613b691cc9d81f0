package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

func registerCoreTools(srv *mcp.Server, t toolset) {
	srv.Tool("cli.health").
		Description("Check the health of the task store and its dependencies").
		Handler(t.healthCheck)

	srv.Tool("cli.version").
		Description("Get CLI version information").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			return map[string]string{
				"version":   cli.Version,
				"commit":    cli.Commit,
				"buildDate": cli.BuildDate,
			}, nil
		})
}

func (t toolset) healthCheck(ctx context.Context, _ struct{}) (*observability.OverallHealth, error) {
	if t.app == nil {
		return nil, errors.New("app not initialized")
	}
	if t.health == nil {
		return &observability.OverallHealth{Status: observability.HealthStatusHealthy, Timestamp: time.Now().UTC()}, nil
	}
	health := t.health.GetOverallHealth(ctx)
	return &health, nil
}

package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/engine"
)

// strategyInfo describes one preset and its weights per role.
type strategyInfo struct {
	Name        domain.Strategy                        `json:"name"`
	DisplayName string                                 `json:"display_name"`
	Weights     map[domain.Role]domain.FractionWeights `json:"weights"`
}

// RegisterResources registers MCP resources that expose stored tasks and
// their ranking.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	t := toolset{app: deps.App, health: deps.Health}

	srv.Resource("taskanalyzer://tasks").
		Name("Tasks").
		Description("All stored tasks").
		MimeType(jsonMimeType).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			tasks, err := t.listTasks(ctx, taskListInput{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, tasks)
		})

	srv.Resource("taskanalyzer://tasks/overdue").
		Name("Overdue Tasks").
		Description("Stored tasks whose due time has passed").
		MimeType(jsonMimeType).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			tasks, err := t.listTasks(ctx, taskListInput{Overdue: true})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, tasks)
		})

	srv.Resource("taskanalyzer://analysis").
		Name("Stored Task Ranking").
		Description("Stored tasks ranked with the smart_balance strategy for developers").
		MimeType(jsonMimeType).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if err := t.requireStore("stored analysis"); err != nil {
				return nil, err
			}
			analysis, err := t.app.AnalyzeTasksHandler.Handle(ctx, prioritizationQueries.AnalyzeTasksQuery{UseStored: true})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, analysis)
		})

	srv.Resource("taskanalyzer://strategies").
		Name("Strategies").
		Description("Ranking strategies and the weights each applies per role").
		MimeType(jsonMimeType).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			infos, err := strategyInfos()
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, infos)
		})

	srv.Resource("taskanalyzer://system/status").
		Name("System Status").
		Description("Health of the task store and its dependencies").
		MimeType(jsonMimeType).
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			health, err := t.healthCheck(ctx, struct{}{})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, map[string]any{
				"health":      health,
				"server_time": time.Now().UTC().Format(time.RFC3339),
			})
		})

	return nil
}

func strategyInfos() ([]strategyInfo, error) {
	infos := make([]strategyInfo, 0, len(domain.Strategies))
	for _, s := range domain.Strategies {
		info := strategyInfo{
			Name:        s,
			DisplayName: s.DisplayName(),
			Weights:     make(map[domain.Role]domain.FractionWeights, len(domain.Roles)),
		}
		for _, r := range domain.Roles {
			w, err := engine.ResolveWeights(s, r, nil)
			if err != nil {
				return nil, err
			}
			info.Weights[r] = w
		}
		infos = append(infos, info)
	}
	return infos, nil
}

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
)

// RegisterPrompts registers MCP prompts for common prioritization workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("prioritize_tasks").
		Description("Decide what to work on next. Optional args: strategy, role.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			strategy, role, err := promptChoices(args)
			if err != nil {
				return nil, err
			}
			return userPrompt("Prioritization Session", fmt.Sprintf(`Help me decide what to work on next.

1. Read my stored tasks from the taskanalyzer://tasks resource
2. Call tasks.suggest with use_stored=true, strategy=%q and role=%q
3. If the result carries a circular_warning, point out the cycles first

Then:
- Summarize the top suggestions and why each ranks where it does
- Flag overdue tasks and any quick wins under two hours
- Say whether a different strategy (see taskanalyzer://strategies) would change the order`,
				strategy, role)), nil
		})

	srv.Prompt("untangle_dependencies").
		Description("Find and break circular dependencies between stored tasks.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Dependency Review", `Review the dependencies between my stored tasks.

1. Read the ranked tasks from the taskanalyzer://analysis resource
2. List every chain in circular_dependencies

For each cycle:
- Suggest which dependency edge to drop so the chain becomes a sequence
- Explain what that means for the order of work

Apply an agreed change with task.update, passing the full new dependencies list.`), nil
		})

	srv.Prompt("plan_batch").
		Description("Rank a pasted list of tasks without storing them. Required arg: tasks (free text).").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			tasks := strings.TrimSpace(args["tasks"])
			if tasks == "" {
				return nil, fmt.Errorf("tasks argument is required")
			}
			return userPrompt("Batch Planning", `Turn the tasks below into task objects with id, title, due_date (YYYY-MM-DD),
estimated_hours, importance (1-10) and dependencies, asking me for anything missing.
Then call tasks.analyze with them and walk me through the ranking.

Tasks:
`+tasks), nil
		})

	return nil
}

func promptChoices(args map[string]string) (string, string, error) {
	strategy := domain.StrategySmartBalance
	if s := args["strategy"]; s != "" {
		strategy = domain.ParseStrategy(s)
		if !strategy.IsKnown() {
			return "", "", fmt.Errorf("unknown strategy %q", s)
		}
	}
	role := domain.DefaultRole
	if r := args["role"]; r != "" {
		role = domain.Role(r)
		if !role.IsKnown() {
			return "", "", fmt.Errorf("unknown role %q", r)
		}
	}
	return string(strategy), string(role), nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}

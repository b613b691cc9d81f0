package priority

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

var analyzeFlags inputFlags

// AnalyzeCmd ranks every task.
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Score and rank tasks",
	Long: `Score every task and print them ranked by priority.

The file holds a JSON or YAML list of tasks, or an object with "tasks",
"strategy", "role" and "custom_weights". Use "-" to read JSON from stdin.

Examples:
  taskanalyzer analyze tasks.json
  taskanalyzer analyze tasks.yaml --strategy deadline_driven
  taskanalyzer analyze tasks.json --weights 40,30,20,10
  taskanalyzer analyze --stored --role program_manager
  taskanalyzer analyze tasks.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := analyzeFlags.validateArgs(args); err != nil {
			return err
		}
		return analyzeFlags.runOnce(cmd, args, func(ctx context.Context) error {
			app, err := analyzeFlags.app(ctx)
			if err != nil {
				return err
			}
			query, err := analyzeFlags.query(args)
			if err != nil {
				return err
			}

			analysis, err := observability.TimeOperationResult(ctx, cli.Logger(), nil, "tasks.analyze",
				func(ctx context.Context) (*domain.Analysis, error) {
					return app.AnalyzeTasksHandler.Handle(ctx, query)
				})
			if err != nil {
				return err
			}

			if analyzeFlags.asJSON {
				return cli.WriteJSON(cmd.OutOrStdout(), analysis)
			}
			cli.RenderAnalysis(cmd.OutOrStdout(), analysis)
			return nil
		})
	},
}

func init() {
	analyzeFlags.register(AnalyzeCmd)
}

package priority

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/engine"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

var (
	suggestFlags inputFlags
	suggestLimit int
)

// SuggestCmd prints the top tasks with explanations.
var SuggestCmd = &cobra.Command{
	Use:   "suggest [file]",
	Short: "Suggest what to work on next",
	Long: `Rank the tasks and explain the top picks.

Examples:
  taskanalyzer suggest tasks.json
  taskanalyzer suggest --stored --strategy fastest_wins
  taskanalyzer suggest tasks.yaml --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := suggestFlags.validateArgs(args); err != nil {
			return err
		}
		return suggestFlags.runOnce(cmd, args, func(ctx context.Context) error {
			app, err := suggestFlags.app(ctx)
			if err != nil {
				return err
			}
			query, err := suggestFlags.query(args)
			if err != nil {
				return err
			}

			suggestions, err := observability.TimeOperationResult(ctx, cli.Logger(), nil, "tasks.suggest",
				func(ctx context.Context) (*domain.Suggestions, error) {
					return app.SuggestTasksHandler.Handle(ctx, prioritizationQueries.SuggestTasksQuery{
						AnalyzeTasksQuery: query,
						Limit:             suggestLimit,
					})
				})
			if err != nil {
				return err
			}

			if suggestFlags.asJSON {
				return cli.WriteJSON(cmd.OutOrStdout(), suggestions)
			}
			cli.RenderSuggestions(cmd.OutOrStdout(), suggestions)
			return nil
		})
	},
}

func init() {
	suggestFlags.register(SuggestCmd)
	SuggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", engine.DefaultSuggestionLimit, "number of suggestions")
}

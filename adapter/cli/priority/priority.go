// Package priority holds the analyze and suggest commands.
package priority

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
)

// inputFlags are shared by analyze and suggest.
type inputFlags struct {
	strategy string
	role     string
	weights  string
	stored   bool
	watch    bool
	asJSON   bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "smart_balance, fastest_wins, high_impact or deadline_driven")
	cmd.Flags().StringVarP(&f.role, "role", "r", "", "developer or program_manager")
	cmd.Flags().StringVarP(&f.weights, "weights", "w", "", "custom percentages urgency,importance,effort,dependencies (smart_balance only)")
	cmd.Flags().BoolVar(&f.stored, "stored", false, "analyze tasks from the task store instead of a file")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "re-run whenever the task file changes")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON instead of a table")
}

func (f *inputFlags) validateArgs(args []string) error {
	switch {
	case f.stored && len(args) > 0:
		return errors.New("give either a task file or --stored, not both")
	case !f.stored && len(args) == 0:
		return errors.New("a task file (or --stored) is required")
	case f.watch && f.stored:
		return errors.New("--watch needs a task file")
	case f.watch && args[0] == "-":
		return errors.New("--watch cannot watch stdin")
	}
	return nil
}

// app returns the store-backed app for --stored and an engine-only app
// otherwise.
func (f *inputFlags) app(ctx context.Context) (*cli.App, error) {
	if f.stored {
		return cli.RequireApp(ctx)
	}
	return cli.EngineApp()
}

// query builds the analysis query. Flags win over values in the file.
func (f *inputFlags) query(args []string) (prioritizationQueries.AnalyzeTasksQuery, error) {
	var q prioritizationQueries.AnalyzeTasksQuery
	if f.stored {
		q.UseStored = true
	} else {
		file, err := cli.LoadTaskFile(args[0])
		if err != nil {
			return q, err
		}
		q.Tasks = file.Tasks
		q.Strategy = file.Strategy
		q.Role = file.Role
		q.CustomWeights = file.CustomWeights
	}

	if f.strategy != "" {
		q.Strategy = f.strategy
	}
	if f.role != "" {
		q.Role = f.role
	}
	weights, err := cli.ParseWeightsFlag(f.weights)
	if err != nil {
		return q, fmt.Errorf("invalid custom weights: %w", err)
	}
	if weights != nil {
		q.CustomWeights = weights
	}
	return q, nil
}

// runOnce runs fn, or with --watch runs it again after every change to the
// task file until the context ends.
func (f *inputFlags) runOnce(cmd *cobra.Command, args []string, fn func(ctx context.Context) error) error {
	if !f.watch {
		return fn(cmd.Context())
	}
	return watchFile(cmd.Context(), args[0], cmd.ErrOrStderr(), fn)
}

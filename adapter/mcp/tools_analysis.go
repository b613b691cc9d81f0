package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
)

type analyzeInput struct {
	Tasks         []domain.TaskInput     `json:"tasks,omitempty"`
	UseStored     bool                   `json:"use_stored,omitempty"`
	Strategy      string                 `json:"strategy,omitempty"`
	Role          string                 `json:"role,omitempty"`
	CustomWeights *domain.PercentWeights `json:"custom_weights,omitempty"`
}

type suggestInput struct {
	Tasks         []domain.TaskInput     `json:"tasks,omitempty"`
	UseStored     bool                   `json:"use_stored,omitempty"`
	Strategy      string                 `json:"strategy,omitempty"`
	Role          string                 `json:"role,omitempty"`
	CustomWeights *domain.PercentWeights `json:"custom_weights,omitempty"`
	Limit         int                    `json:"limit,omitempty"`
}

func (in analyzeInput) query() (prioritizationQueries.AnalyzeTasksQuery, error) {
	if !in.UseStored && len(in.Tasks) == 0 {
		return prioritizationQueries.AnalyzeTasksQuery{}, errors.New("tasks are required unless use_stored is set")
	}
	return prioritizationQueries.AnalyzeTasksQuery{
		Tasks:         in.Tasks,
		UseStored:     in.UseStored,
		Strategy:      in.Strategy,
		Role:          in.Role,
		CustomWeights: in.CustomWeights,
	}, nil
}

func registerAnalysisTools(srv *mcp.Server, t toolset) {
	srv.Tool("tasks.analyze").
		Description("Score and rank tasks by urgency, importance, effort and dependencies. " +
			"Pass tasks inline or set use_stored. Strategies: smart_balance, fastest_wins, high_impact, deadline_driven.").
		Handler(t.analyze)

	srv.Tool("tasks.suggest").
		Description("Return the top tasks to work on next, each with a short explanation").
		Handler(t.suggest)
}

func (t toolset) analyze(ctx context.Context, input analyzeInput) (*domain.Analysis, error) {
	q, err := input.query()
	if err != nil {
		return nil, err
	}
	return t.app.AnalyzeTasksHandler.Handle(ctx, q)
}

func (t toolset) suggest(ctx context.Context, input suggestInput) (*domain.Suggestions, error) {
	q, err := analyzeInput{
		Tasks:         input.Tasks,
		UseStored:     input.UseStored,
		Strategy:      input.Strategy,
		Role:          input.Role,
		CustomWeights: input.CustomWeights,
	}.query()
	if err != nil {
		return nil, err
	}
	return t.app.SuggestTasksHandler.Handle(ctx, prioritizationQueries.SuggestTasksQuery{
		AnalyzeTasksQuery: q,
		Limit:             input.Limit,
	})
}

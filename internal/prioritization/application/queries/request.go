package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/engine"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

var (
	// ErrCustomWeightsStrategy rejects custom weights under a fixed preset.
	ErrCustomWeightsStrategy error = &domain.WeightsError{Message: "Custom weights can only be used with Smart Balance strategy"}

	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrUnknownRole     = errors.New("unknown role")
)

// StoredTaskSource lists tasks from the record store.
type StoredTaskSource interface {
	FindAll(ctx context.Context) ([]*task.Task, error)
}

// AnalyzeTasksQuery ranks an ad-hoc batch, or the stored tasks when UseStored
// is set. Empty Strategy means smart_balance and empty Role means developer.
type AnalyzeTasksQuery struct {
	Tasks         []domain.TaskInput
	UseStored     bool
	Strategy      string
	Role          string
	CustomWeights *domain.PercentWeights
}

// toRequest applies the boundary rules and loads stored tasks if asked.
func toRequest(ctx context.Context, source StoredTaskSource, q AnalyzeTasksQuery) (engine.Request, error) {
	strategy := domain.StrategySmartBalance
	if q.Strategy != "" {
		strategy = domain.ParseStrategy(q.Strategy)
		if !strategy.IsKnown() {
			return engine.Request{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, q.Strategy)
		}
	}

	role := domain.DefaultRole
	if q.Role != "" {
		role = domain.Role(q.Role)
		if !role.IsKnown() {
			return engine.Request{}, fmt.Errorf("%w: %q", ErrUnknownRole, q.Role)
		}
	}

	req := engine.Request{Tasks: q.Tasks, Strategy: strategy, Role: role}
	if q.CustomWeights != nil {
		if strategy != domain.StrategySmartBalance {
			return engine.Request{}, ErrCustomWeightsStrategy
		}
		fractions, err := q.CustomWeights.ToFractions()
		if err != nil {
			return engine.Request{}, err
		}
		req.CustomWeights = &fractions
	}

	if q.UseStored {
		if source == nil {
			return engine.Request{}, errors.New("stored tasks are not available")
		}
		stored, err := source.FindAll(ctx)
		if err != nil {
			return engine.Request{}, fmt.Errorf("load stored tasks: %w", err)
		}
		req.Tasks = FromStoredTasks(stored)
	}
	return req, nil
}

// FromStoredTasks converts stored aggregates into engine input, keeping order.
func FromStoredTasks(tasks []*task.Task) []domain.TaskInput {
	inputs := make([]domain.TaskInput, 0, len(tasks))
	for _, t := range tasks {
		hours := t.EstimatedHours()
		importance := t.Importance()

		deps := make(domain.Dependencies, 0, len(t.Dependencies()))
		for _, id := range t.Dependencies() {
			deps = append(deps, domain.TaskIDFromInt(id))
		}

		inputs = append(inputs, domain.TaskInput{
			ID:             domain.TaskIDFromInt(t.ID()),
			Title:          t.Title(),
			DueDate:        t.DueDate().Format(domain.DateLayout),
			DueTime:        t.DueTime(),
			EstimatedHours: &hours,
			Importance:     &importance,
			Dependencies:   deps,
			Role:           domain.Role(t.Role()),
			Notes:          t.Notes(),
		})
	}
	return inputs
}

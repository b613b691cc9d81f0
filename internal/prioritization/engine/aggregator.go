package engine

import (
	"math"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
)

// ScoreTask computes the weighted priority of one task within its batch.
func ScoreTask(
	task domain.Task,
	all []domain.Task,
	strategy domain.Strategy,
	role domain.Role,
	now time.Time,
	custom *domain.FractionWeights,
) (domain.ScoredTask, error) {
	weights, err := ResolveWeights(strategy, role, custom)
	if err != nil {
		return domain.ScoredTask{}, err
	}
	return scoreWithWeights(task, all, weights, now), nil
}

func scoreWithWeights(task domain.Task, all []domain.Task, weights domain.FractionWeights, now time.Time) domain.ScoredTask {
	urgency, urgencyWhy := ScoreUrgency(task, now)
	importance, importanceWhy := ScoreImportance(task)
	effort, effortWhy := ScoreEffort(task, EffortCeilingHours)
	dependency, dependencyWhy := ScoreDependencyImpact(task, all)

	score := urgency*weights.Urgency +
		importance*weights.Importance +
		effort*weights.Effort +
		dependency*weights.Dependency

	return domain.ScoredTask{
		Task:          task,
		PriorityScore: round2(score),
		PriorityLabel: domain.LabelFor(score),
		ComponentScores: domain.ComponentScores{
			Urgency:    round2(urgency),
			Importance: round2(importance),
			Effort:     round2(effort),
			Dependency: round2(dependency),
		},
		Explanations: []string{urgencyWhy, dependencyWhy, importanceWhy, effortWhy},
		IsOverdue:    now.After(task.Due),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package engine

import (
	"testing"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/stretchr/testify/assert"
)

func TestExplainSuggestion(t *testing.T) {
	blocker := domain.Task{ID: "core", Importance: 9, EstimatedHours: 2}
	batch := []domain.Task{
		blocker,
		{ID: "a", Dependencies: []domain.TaskID{"core"}},
		{ID: "b", Dependencies: []domain.TaskID{"core"}},
		{ID: "c", Dependencies: []domain.TaskID{"core"}},
	}

	tests := []struct {
		name     string
		strategy domain.Strategy
		role     domain.Role
		scores   domain.ComponentScores
		want     string
	}{
		{
			name:     "overdue developer task",
			strategy: domain.StrategySmartBalance,
			role:     domain.RoleDeveloper,
			scores:   domain.ComponentScores{Urgency: 110, Importance: 80, Effort: 90, Dependency: 50},
			want: "This task was prioritized using the Smart Balance strategy, which is optimized for Developers. " +
				"It's overdue by 1 day(s), making it extremely urgent with an urgency score of 110.0/100+.",
		},
		{
			name:     "program manager with urgency and importance on top",
			strategy: domain.StrategySmartBalance,
			role:     domain.RoleProgramManager,
			scores:   domain.ComponentScores{Urgency: 94, Importance: 90, Effort: 50, Dependency: 0},
			want: "This task was prioritized using the Smart Balance strategy, which is optimized for Program Managers. " +
				"It's due in 2 day(s), giving it a high urgency score of 94.0/100. " +
				"It has a high importance rating of 9/10, contributing 90.0/100 to the priority score. " +
				"For Program Managers, urgent and high-importance tasks are weighted more heavily to ensure stakeholder needs and deadlines are met.",
		},
		{
			name:     "fastest wins quick blocker",
			strategy: domain.StrategyFastestWins,
			role:     domain.RoleDeveloper,
			scores:   domain.ComponentScores{Urgency: 70, Importance: 30, Effort: 95, Dependency: 75},
			want: "This task was prioritized using the Fastest Wins strategy. " +
				"It blocks 3 other task(s), making it a critical dependency with a dependency score of 75.0/100. " +
				"With an estimated 2.0 hours, it's a quick win that can be completed efficiently, contributing 95.0/100 to the score.",
		},
		{
			name:     "developer blocker",
			strategy: domain.StrategySmartBalance,
			role:     domain.RoleDeveloper,
			scores:   domain.ComponentScores{Urgency: 40, Importance: 60, Effort: 20, Dependency: 100},
			want: "This task was prioritized using the Smart Balance strategy, which is optimized for Developers. " +
				"It blocks 3 other task(s), making it a critical dependency with a dependency score of 100.0/100. " +
				"It has a high importance rating of 9/10, contributing 60.0/100 to the priority score. " +
				"For Developers, tasks that block other work or can be completed quickly are prioritized to maintain development momentum.",
		},
		{
			name:     "ties keep component order",
			strategy: domain.StrategyHighImpact,
			scores:   domain.ComponentScores{Urgency: 50, Importance: 50, Effort: 50, Dependency: 50},
			want: "This task was prioritized using the High Impact strategy. " +
				"It's due in 16 day(s), giving it a high urgency score of 50.0/100. " +
				"It has a high importance rating of 9/10, contributing 50.0/100 to the priority score.",
		},
		{
			name:     "unknown strategy shows its raw name",
			strategy: "zen_mode",
			role:     domain.RoleDeveloper,
			scores:   domain.ComponentScores{Urgency: 5, Importance: 10, Effort: 30, Dependency: 0},
			want: "This task was prioritized using the zen_mode strategy. " +
				"It has a high importance rating of 9/10, contributing 10.0/100 to the priority score.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExplainSuggestion(blocker, tt.strategy, tt.role, tt.scores, batch)
			assert.Equal(t, tt.want, got)
		})
	}
}

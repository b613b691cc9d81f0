package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return New(Config{Now: func() time.Time { return referenceNow }})
}

func hours(v float64) *float64 { return &v }
func rating(v int) *int         { return &v }

func TestEngine_AnalyzeEmpty(t *testing.T) {
	analysis, err := newTestEngine().Analyze(Request{Strategy: domain.StrategySmartBalance})
	require.NoError(t, err)

	assert.Empty(t, analysis.Tasks)
	assert.NotNil(t, analysis.Tasks)
	assert.Empty(t, analysis.CircularDependencies)
	assert.Empty(t, analysis.AffectedTaskIDs)
	assert.Nil(t, analysis.CircularWarning)
	assert.Equal(t, []string{"No tasks provided"}, analysis.Warnings)
}

func TestEngine_AnalyzeAppliesDefaults(t *testing.T) {
	analysis, err := newTestEngine().Analyze(Request{
		Tasks:    []domain.TaskInput{{}},
		Strategy: domain.StrategySmartBalance,
	})
	require.NoError(t, err)
	require.Len(t, analysis.Tasks, 1)

	task := analysis.Tasks[0]
	assert.Equal(t, domain.TaskID("task_0"), task.ID)
	assert.Equal(t, domain.DefaultTitle, task.Title)
	assert.Equal(t, "2025-06-17", task.DueDate)
	assert.Equal(t, "23:59", task.DueTime)
	assert.Equal(t, 1.0, task.EstimatedHours)
	assert.Equal(t, 5, task.Importance)
	assert.Equal(t, domain.RoleDeveloper, task.Role)
	assert.Empty(t, task.Dependencies)
	assert.False(t, task.IsOverdue)
	assert.Empty(t, analysis.Warnings)
}

func TestEngine_AnalyzeSortsDescending(t *testing.T) {
	analysis, err := newTestEngine().Analyze(Request{
		Tasks: []domain.TaskInput{
			{ID: "low", DueDate: "2025-07-30", Importance: rating(1), EstimatedHours: hours(30)},
			{ID: "high", DueDate: "2025-06-09", Importance: rating(10), EstimatedHours: hours(1)},
			{ID: "mid", DueDate: "2025-06-14", Importance: rating(6), EstimatedHours: hours(6)},
			{ID: "mid-twin", DueDate: "2025-06-14", Importance: rating(6), EstimatedHours: hours(6)},
		},
		Strategy: domain.StrategySmartBalance,
	})
	require.NoError(t, err)
	require.Len(t, analysis.Tasks, 4)

	for i := 0; i+1 < len(analysis.Tasks); i++ {
		assert.GreaterOrEqual(t, analysis.Tasks[i].PriorityScore, analysis.Tasks[i+1].PriorityScore)
	}
	assert.Equal(t, domain.TaskID("high"), analysis.Tasks[0].ID)
	assert.Equal(t, domain.TaskID("mid"), analysis.Tasks[1].ID)
	assert.Equal(t, domain.TaskID("mid-twin"), analysis.Tasks[2].ID)
	assert.Equal(t, []string{"1 task(s) are overdue"}, analysis.Warnings)
}

func TestEngine_AnalyzeOverdueDeadlineDriven(t *testing.T) {
	analysis, err := newTestEngine().Analyze(Request{
		Tasks: []domain.TaskInput{{
			ID:             "report",
			Title:          "Quarterly report",
			DueDate:        "2025-06-09",
			DueTime:        "17:00",
			Importance:     rating(5),
			EstimatedHours: hours(5),
		}},
		Strategy: domain.StrategyDeadlineDriven,
	})
	require.NoError(t, err)

	task := analysis.Tasks[0]
	assert.True(t, task.IsOverdue)
	assert.Greater(t, task.PriorityScore, 50.0)
}

func TestEngine_AnalyzeCircularDependencies(t *testing.T) {
	t.Run("single cycle", func(t *testing.T) {
		analysis, err := newTestEngine().Analyze(Request{
			Tasks: []domain.TaskInput{
				{ID: "task_1", Title: "Design", Dependencies: domain.Dependencies{"task_2"}},
				{ID: "task_2", Title: "Build", Dependencies: domain.Dependencies{"task_1"}},
			},
			Strategy: domain.StrategySmartBalance,
		})
		require.NoError(t, err)

		require.Len(t, analysis.CircularDependencies, 1)
		chain := analysis.CircularDependencies[0]
		assert.Contains(t, chain, "task_1")
		assert.Contains(t, chain, "task_2")
		assert.ElementsMatch(t, []domain.TaskID{"task_1", "task_2"}, analysis.AffectedTaskIDs)
		require.NotNil(t, analysis.CircularWarning)
		assert.Equal(t, "Circular dependency detected: "+chain+". Break the cycle by removing one dependency.", *analysis.CircularWarning)
		assert.Contains(t, analysis.Warnings, "1 circular dependency chain(s) detected")
	})

	t.Run("several cycles", func(t *testing.T) {
		analysis, err := newTestEngine().Analyze(Request{
			Tasks: []domain.TaskInput{
				{ID: "a", Dependencies: domain.Dependencies{"b"}},
				{ID: "b", Dependencies: domain.Dependencies{"a"}},
				{ID: "c", Dependencies: domain.Dependencies{"d"}},
				{ID: "d", Dependencies: domain.Dependencies{"c"}},
			},
		})
		require.NoError(t, err)

		require.NotNil(t, analysis.CircularWarning)
		assert.Equal(t, "2 circular dependencies detected. Break the cycles by removing dependencies.", *analysis.CircularWarning)
	})
}

func TestEngine_AnalyzeCustomWeights(t *testing.T) {
	inputs := []domain.TaskInput{{ID: "a", DueDate: "2025-06-20", Importance: rating(10), EstimatedHours: hours(39)}}

	t.Run("importance only", func(t *testing.T) {
		custom := domain.FractionWeights{Importance: 1}
		analysis, err := newTestEngine().Analyze(Request{Tasks: inputs, Strategy: domain.StrategySmartBalance, CustomWeights: &custom})
		require.NoError(t, err)
		assert.Equal(t, 100.0, analysis.Tasks[0].PriorityScore)
	})

	t.Run("invalid sum", func(t *testing.T) {
		custom := domain.FractionWeights{Importance: 0.5}
		_, err := newTestEngine().Analyze(Request{Tasks: inputs, Strategy: domain.StrategySmartBalance, CustomWeights: &custom})
		assert.ErrorIs(t, err, domain.ErrInvalidWeights)
	})
}

func TestEngine_AnalyzeMalformedTask(t *testing.T) {
	_, err := newTestEngine().Analyze(Request{
		Tasks: []domain.TaskInput{
			{ID: "ok", DueDate: "2025-06-20"},
			{ID: "bad", DueDate: "20/06/2025"},
		},
	})
	require.ErrorIs(t, err, domain.ErrMalformedTask)

	var malformed *domain.MalformedTaskError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "due_date", malformed.Field)
	assert.Equal(t, domain.TaskID("bad"), malformed.TaskID)
	assert.Equal(t, 1, malformed.Index)
}

func TestEngine_AnalyzeUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	e := New(Config{Now: func() time.Time { return referenceNow }, Location: loc})

	// 16:00 at UTC+5 is 11:00 UTC, one hour before the reference instant.
	analysis, err := e.Analyze(Request{Tasks: []domain.TaskInput{{ID: "a", DueDate: "2025-06-10", DueTime: "16:00"}}})
	require.NoError(t, err)
	assert.True(t, analysis.Tasks[0].IsOverdue)
	assert.Equal(t, loc, e.Location())
}

func TestEngine_Suggest(t *testing.T) {
	inputs := []domain.TaskInput{
		{ID: "1", Title: "Fix login", DueDate: "2025-06-09", Importance: rating(9), EstimatedHours: hours(2)},
		{ID: "2", Title: "Write docs", DueDate: "2025-07-01", Importance: rating(3), EstimatedHours: hours(8), Dependencies: domain.Dependencies{"1"}},
		{ID: "3", Title: "Refactor", DueDate: "2025-06-20", Importance: rating(6), EstimatedHours: hours(12)},
		{ID: "4", Title: "Plan sprint", DueDate: "2025-06-11", Importance: rating(7), EstimatedHours: hours(1)},
	}

	suggestions, err := newTestEngine().Suggest(Request{
		Tasks:    inputs,
		Strategy: domain.StrategySmartBalance,
		Role:     domain.RoleDeveloper,
	}, 0)
	require.NoError(t, err)

	assert.Len(t, suggestions.Suggestions, DefaultSuggestionLimit)
	assert.Equal(t, 4, suggestions.TotalTasks)
	assert.Equal(t, domain.StrategySmartBalance, suggestions.Strategy)
	assert.Equal(t, domain.RoleDeveloper, suggestions.Role)
	assert.Equal(t, domain.TaskID("1"), suggestions.Suggestions[0].ID)
	for _, s := range suggestions.Suggestions {
		assert.Contains(t, s.Explanation, "Smart Balance strategy, which is optimized for Developers.")
	}
	assert.Contains(t, suggestions.Warnings, "1 task(s) are overdue")
}

func TestEngine_SuggestFewerThanLimit(t *testing.T) {
	suggestions, err := newTestEngine().Suggest(Request{
		Tasks:    []domain.TaskInput{{ID: "only"}},
		Strategy: domain.StrategyHighImpact,
	}, 3)
	require.NoError(t, err)
	assert.Len(t, suggestions.Suggestions, 1)
	assert.Equal(t, 1, suggestions.TotalTasks)
}

package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
)

// Scoring constants. These are fixed contract values.
const (
	// EffortCeilingHours is the estimate at and above which effort scores 0.
	EffortCeilingHours = 40.0
	// MinEstimatedHours is the floor applied to estimates before scoring.
	MinEstimatedHours  = 0.1

	overduePointsPerDay     = 10.0
	urgencyDecayPerDay      = 3.0
	pointsPerDependent      = 25.0
	maxComponentScore       = 100.0
	minImportance           = 1
	maxImportance           = 10
	importancePointsPerStep = 10.0
)

const day = 24 * time.Hour

// ScoreUrgency scores how soon a task is due relative to now. Overdue tasks
// score above 100 and keep growing with lateness. A task due exactly at now
// is not overdue.
func ScoreUrgency(task domain.Task, now time.Time) (float64, string) {
	if task.Due.Before(now) {
		days := ceilDays(now.Sub(task.Due))
		score := maxComponentScore + float64(days)*overduePointsPerDay
		return score, fmt.Sprintf("Overdue by %d day(s) (urgency: %.1f/100+)", days, score)
	}

	days := ceilDays(task.Due.Sub(now))
	score := math.Max(0, maxComponentScore-float64(days)*urgencyDecayPerDay)
	return score, fmt.Sprintf("Due in %d day(s) (urgency: %.1f/100)", days, score)
}

// ceilDays counts whole days in d, rounding any remainder up.
func ceilDays(d time.Duration) int {
	days := int(d / day)
	if d%day > 0 {
		days++
	}
	return days
}

// ScoreImportance maps the 1-10 rating onto 10-100. Out-of-range ratings are clamped.
func ScoreImportance(task domain.Task) (float64, string) {
	rating := min(max(task.Importance, minImportance), maxImportance)
	score := float64(rating) * importancePointsPerStep
	return score, fmt.Sprintf("High importance rating of %d/10 (%.1f/100)", rating, score)
}

// ScoreEffort rewards short tasks linearly against a fixed ceiling.
func ScoreEffort(task domain.Task, ceilingHours float64) (float64, string) {
	if ceilingHours <= 0 {
		ceilingHours = EffortCeilingHours
	}
	hours := math.Max(MinEstimatedHours, task.EstimatedHours)
	score := math.Max(0, (ceilingHours-hours)/ceilingHours*maxComponentScore)
	return score, fmt.Sprintf("Estimated %.1f hours (effort: %.1f/100)", hours, score)
}

// ScoreDependencyImpact scores how many tasks in the batch wait on this one.
// The score saturates at four dependents.
func ScoreDependencyImpact(task domain.Task, all []domain.Task) (float64, string) {
	if task.ID == "" {
		return 0, "No dependencies (dependency: 0/100)"
	}
	count := CountDependents(task.ID, all)
	if count == 0 {
		return 0, "No dependencies (dependency: 0/100)"
	}
	score := math.Min(maxComponentScore, float64(count)*pointsPerDependent)
	return score, fmt.Sprintf("Blocks %d other task(s) (dependency: %.1f/100)", count, score)
}

// CountDependents returns how many tasks list id among their dependencies.
func CountDependents(id domain.TaskID, all []domain.Task) int {
	if id == "" {
		return 0
	}
	count := 0
	for _, other := range all {
		for _, dep := range other.Dependencies {
			if dep == id {
				count++
				break
			}
		}
	}
	return count
}

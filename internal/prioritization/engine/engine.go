package engine

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/sourcegraph/conc/iter"
)

// DefaultSuggestionLimit is how many tasks a suggestion returns.
const DefaultSuggestionLimit = 3

// Config configures the analysis engine.
type Config struct {
	// Location is where due dates and times are interpreted.
	Location *time.Location
	// MaxWorkers bounds per-task scoring concurrency.
	MaxWorkers int
	// Now supplies the reference instant for each analysis.
	Now func() time.Time
}

// DefaultConfig returns UTC, one worker per CPU and the wall clock.
func DefaultConfig() Config {
	return Config{
		Location:   time.UTC,
		MaxWorkers: runtime.GOMAXPROCS(0),
		Now:        time.Now,
	}
}

// Engine ranks task batches. It holds no state between calls.
type Engine struct {
	config Config
}

// New creates an engine, filling unset config fields from DefaultConfig.
func New(config Config) *Engine {
	defaults := DefaultConfig()
	if config.Location == nil {
		config.Location = defaults.Location
	}
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.Now == nil {
		config.Now = defaults.Now
	}
	return &Engine{config: config}
}

// Location returns the location due instants are resolved in.
func (e *Engine) Location() *time.Location {
	return e.config.Location
}

// Request is one analysis call.
type Request struct {
	Tasks         []domain.TaskInput
	Strategy      domain.Strategy
	Role          domain.Role
	CustomWeights *domain.FractionWeights
}

// Analyze applies defaults, detects cycles, scores every task and returns
// them ordered by descending priority. Ties keep input order.
func (e *Engine) Analyze(req Request) (*domain.Analysis, error) {
	analysis, _, err := e.analyze(req)
	return analysis, err
}

func (e *Engine) analyze(req Request) (*domain.Analysis, []domain.Task, error) {
	if len(req.Tasks) == 0 {
		return &domain.Analysis{
			Tasks:                []domain.ScoredTask{},
			CircularDependencies: []string{},
			AffectedTaskIDs:      []domain.TaskID{},
			Warnings:             []string{"No tasks provided"},
		}, nil, nil
	}

	weights, err := ResolveWeights(req.Strategy, req.Role, req.CustomWeights)
	if err != nil {
		return nil, nil, err
	}

	now := e.config.Now()
	tasks, err := domain.NormalizeTasks(req.Tasks, now, e.config.Location)
	if err != nil {
		return nil, nil, err
	}

	cycles := DetectCycles(tasks)

	mapper := iter.Mapper[domain.Task, domain.ScoredTask]{MaxGoroutines: e.config.MaxWorkers}
	scored := mapper.Map(tasks, func(task *domain.Task) domain.ScoredTask {
		return scoreWithWeights(*task, tasks, weights, now)
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PriorityScore > scored[j].PriorityScore
	})

	overdue := 0
	for _, task := range scored {
		if task.IsOverdue {
			overdue++
		}
	}

	warnings := []string{}
	if overdue > 0 {
		warnings = append(warnings, fmt.Sprintf("%d task(s) are overdue", overdue))
	}
	if n := len(cycles.Chains); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d circular dependency chain(s) detected", n))
	}

	return &domain.Analysis{
		Tasks:                scored,
		CircularDependencies: cycles.Chains,
		AffectedTaskIDs:      cycles.AffectedIDs,
		CircularWarning:      circularWarning(cycles.Chains),
		Warnings:             warnings,
	}, tasks, nil
}

func circularWarning(chains []string) *string {
	var msg string
	switch len(chains) {
	case 0:
		return nil
	case 1:
		msg = fmt.Sprintf("Circular dependency detected: %s. Break the cycle by removing one dependency.", chains[0])
	default:
		msg = fmt.Sprintf("%d circular dependencies detected. Break the cycles by removing dependencies.", len(chains))
	}
	return &msg
}

// Suggest analyzes the batch and explains the top limit tasks.
func (e *Engine) Suggest(req Request, limit int) (*domain.Suggestions, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	analysis, tasks, err := e.analyze(req)
	if err != nil {
		return nil, err
	}

	top := analysis.Tasks[:min(limit, len(analysis.Tasks))]
	suggestions := make([]domain.Suggestion, 0, len(top))
	for _, task := range top {
		suggestions = append(suggestions, domain.Suggestion{
			ScoredTask:  task,
			Explanation: ExplainSuggestion(task.Task, req.Strategy, req.Role, task.ComponentScores, tasks),
		})
	}

	return &domain.Suggestions{
		Suggestions: suggestions,
		Strategy:    req.Strategy,
		Role:        req.Role,
		TotalTasks:  len(analysis.Tasks),
		Warnings:    analysis.Warnings,
	}, nil
}

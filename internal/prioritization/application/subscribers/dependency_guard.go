package subscribers

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/engine"
	taskDomain "github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/eventbus"
)

// CycleAlert is raised when a stored task takes part in a dependency cycle
// after it was created or its dependencies changed.
type CycleAlert struct {
	TaskID  domain.TaskID
	Report  domain.CycleReport
	Checked time.Time
}

// DependencyGuard re-runs cycle detection over the record store whenever a
// task's dependencies may have changed.
type DependencyGuard struct {
	source queries.StoredTaskSource
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time

	mu   sync.Mutex
	last *CycleAlert

	// OnCycle is called after a cycle is logged. Optional.
	OnCycle func(ctx context.Context, alert CycleAlert)
}

// NewDependencyGuard creates a guard over the stored tasks. Due dates are
// normalized in loc, which should match the engine's; nil means UTC.
func NewDependencyGuard(source queries.StoredTaskSource, loc *time.Location, logger *slog.Logger) *DependencyGuard {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DependencyGuard{
		source: source,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

// Location returns the location stored due dates are normalized in.
func (g *DependencyGuard) Location() *time.Location {
	return g.loc
}

// EventTypes returns the event types this subscriber handles.
func (g *DependencyGuard) EventTypes() []string {
	return []string{
		taskDomain.RoutingKeyCreated,
		taskDomain.RoutingKeyUpdated,
	}
}

type taskChangedPayload struct {
	Fields       []string `json:"fields"`
	Dependencies []int64  `json:"dependencies"`
}

// Handle checks the changed task. Store failures are returned so the
// transport can redeliver; everything else is logged and acknowledged.
func (g *DependencyGuard) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload taskChangedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		g.logger.Warn("undecodable task event payload",
			"routing_key", event.RoutingKey,
			"task_id", event.AggregateID,
			"error", err,
		)
		return nil
	}

	if event.RoutingKey == taskDomain.RoutingKeyUpdated && !slices.Contains(payload.Fields, "dependencies") {
		return nil
	}
	if len(payload.Dependencies) == 0 {
		return nil
	}

	stored, err := g.source.FindAll(ctx)
	if err != nil {
		return err
	}

	tasks, err := domain.NormalizeTasks(queries.FromStoredTasks(stored), g.now(), g.loc)
	if err != nil {
		g.logger.Error("stored tasks failed to normalize", "error", err)
		return nil
	}

	report := engine.DetectCycles(tasks)
	id := domain.TaskIDFromInt(event.AggregateID)
	if !slices.Contains(report.AffectedIDs, id) {
		return nil
	}

	alert := CycleAlert{TaskID: id, Report: report, Checked: g.now()}
	g.mu.Lock()
	g.last = &alert
	g.mu.Unlock()

	g.logger.Warn("task is part of a circular dependency",
		"task_id", event.AggregateID,
		"chains", report.Chains,
		"correlation_id", event.Metadata.CorrelationID,
	)
	if g.OnCycle != nil {
		g.OnCycle(ctx, alert)
	}
	return nil
}

// LastAlert returns the most recent cycle alert, or nil.
func (g *DependencyGuard) LastAlert() *CycleAlert {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

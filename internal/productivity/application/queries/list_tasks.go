package queries

import (
	"context"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	Role    string // "developer" or "program_manager"; empty lists every role
	Overdue bool   // only tasks whose due instant has passed
	Limit   int    // 0 = no limit

	// Now and Location anchor the overdue filter. Zero values mean time.Now and UTC.
	Now      time.Time
	Location *time.Location
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle returns stored tasks newest first.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if query.Role != "" {
		role, err := task.ParseRole(query.Role)
		if err != nil {
			return nil, err
		}
		tasks = filterByRole(tasks, role)
	}

	if query.Overdue {
		now := query.Now
		if now.IsZero() {
			now = time.Now()
		}
		loc := query.Location
		if loc == nil {
			loc = time.UTC
		}
		tasks = filterOverdue(tasks, now, loc)
	}

	if query.Limit > 0 && len(tasks) > query.Limit {
		tasks = tasks[:query.Limit]
	}

	return toTaskDTOs(tasks), nil
}

func filterByRole(tasks []*task.Task, role task.Role) []*task.Task {
	var filtered []*task.Task
	for _, t := range tasks {
		if t.Role() == role {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func filterOverdue(tasks []*task.Task, now time.Time, loc *time.Location) []*task.Task {
	var filtered []*task.Task
	for _, t := range tasks {
		if t.IsOverdue(now, loc) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

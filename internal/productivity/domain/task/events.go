package task

import "github.com/DHariharanD/Smart-Task-Analyser/internal/shared/domain"

const (
	AggregateType = "Task"

	RoutingKeyCreated = "productivity.task.created"
	RoutingKeyUpdated = "productivity.task.updated"
	RoutingKeyDeleted = "productivity.task.deleted"
)

// TaskCreated is emitted when a task is stored for the first time.
type TaskCreated struct {
	domain.BaseEvent
	Title        string  `json:"title"`
	Dependencies []int64 `json:"dependencies"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(t *Task) *TaskCreated {
	return &TaskCreated{
		BaseEvent:    domain.NewBaseEvent(t.ID(), AggregateType, RoutingKeyCreated),
		Title:        t.Title(),
		Dependencies: t.Dependencies(),
	}
}

// TaskUpdated is emitted when a task is updated.
type TaskUpdated struct {
	domain.BaseEvent
	Fields       []string `json:"fields"`
	Dependencies []int64  `json:"dependencies"`
}

// NewTaskUpdated creates a TaskUpdated event.
func NewTaskUpdated(t *Task, fields []string) *TaskUpdated {
	return &TaskUpdated{
		BaseEvent:    domain.NewBaseEvent(t.ID(), AggregateType, RoutingKeyUpdated),
		Fields:       fields,
		Dependencies: t.Dependencies(),
	}
}

// TaskDeleted is emitted when a task is removed.
type TaskDeleted struct {
	domain.BaseEvent
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(id int64) *TaskDeleted {
	return &TaskDeleted{
		BaseEvent: domain.NewBaseEvent(id, AggregateType, RoutingKeyDeleted),
	}
}

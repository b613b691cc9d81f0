package queries

import (
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

// TaskDTO is the read model of a stored task.
type TaskDTO struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	DueDate        string    `json:"due_date"`
	DueTime        string    `json:"due_time"`
	EstimatedHours float64   `json:"estimated_hours"`
	Importance     int       `json:"importance"`
	Dependencies   []int64   `json:"dependencies"`
	Role           string    `json:"role"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToTaskDTO maps the aggregate to its read model.
func ToTaskDTO(t *task.Task) TaskDTO {
	deps := t.Dependencies()
	if deps == nil {
		deps = []int64{}
	}
	return TaskDTO{
		ID:             t.ID(),
		Title:          t.Title(),
		DueDate:        t.DueDate().Format(task.DateLayout),
		DueTime:        t.DueTime(),
		EstimatedHours: t.EstimatedHours(),
		Importance:     t.Importance(),
		Dependencies:   deps,
		Role:           string(t.Role()),
		Notes:          t.Notes(),
		CreatedAt:      t.CreatedAt(),
	}
}

func toTaskDTOs(tasks []*task.Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, ToTaskDTO(t))
	}
	return dtos
}

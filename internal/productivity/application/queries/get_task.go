package queries

import (
	"context"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

// GetTaskQuery fetches one stored task.
type GetTaskQuery struct {
	TaskID int64
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	taskRepo task.Repository
}

func NewGetTaskHandler(taskRepo task.Repository) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo}
}

// Handle returns task.ErrTaskNotFound when no task has the id.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (*TaskDTO, error) {
	t, err := h.taskRepo.FindByID(ctx, query.TaskID)
	if err != nil {
		return nil, err
	}
	dto := ToTaskDTO(t)
	return &dto, nil
}

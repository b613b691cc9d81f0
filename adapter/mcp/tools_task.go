package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/queries"
)

type taskCreateInput struct {
	Title          string   `json:"title" jsonschema:"required"`
	DueDate        string   `json:"due_date" jsonschema:"required"`
	DueTime        *string  `json:"due_time,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Importance     *int     `json:"importance,omitempty"`
	Dependencies   []int64  `json:"dependencies,omitempty"`
	Role           string   `json:"role,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

type taskUpdateInput struct {
	TaskID         int64    `json:"task_id" jsonschema:"required"`
	Title          *string  `json:"title,omitempty"`
	DueDate        *string  `json:"due_date,omitempty"`
	DueTime        *string  `json:"due_time,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Importance     *int     `json:"importance,omitempty"`
	Dependencies   *[]int64 `json:"dependencies,omitempty"`
	Role           *string  `json:"role,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

type taskListInput struct {
	Role    string `json:"role,omitempty"`
	Overdue bool   `json:"overdue,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

type taskIDInput struct {
	TaskID int64 `json:"task_id" jsonschema:"required"`
}

func registerTaskTools(srv *mcp.Server, t toolset) {
	srv.Tool("task.create").
		Description("Add a task to the task store").
		Handler(t.createTask)

	srv.Tool("task.list").
		Description("List stored tasks, optionally only overdue ones or one role's").
		Handler(t.listTasks)

	srv.Tool("task.get").
		Description("Get one stored task").
		Handler(t.getTask)

	srv.Tool("task.update").
		Description("Change fields of a stored task; omitted fields keep their value").
		Handler(t.updateTask)

	srv.Tool("task.delete").
		Description("Delete a stored task").
		Handler(t.deleteTask)
}

func (t toolset) createTask(ctx context.Context, input taskCreateInput) (*queries.TaskDTO, error) {
	if err := t.requireStore("task creation"); err != nil {
		return nil, err
	}
	result, err := t.app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		Title:          input.Title,
		DueDate:        input.DueDate,
		DueTime:        input.DueTime,
		EstimatedHours: input.EstimatedHours,
		Importance:     input.Importance,
		Dependencies:   input.Dependencies,
		Role:           input.Role,
		Notes:          input.Notes,
	})
	if err != nil {
		return nil, err
	}
	return t.app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: result.TaskID})
}

func (t toolset) listTasks(ctx context.Context, input taskListInput) ([]queries.TaskDTO, error) {
	if err := t.requireStore("task listing"); err != nil {
		return nil, err
	}
	return t.app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
		Role:     input.Role,
		Overdue:  input.Overdue,
		Limit:    input.Limit,
		Now:      time.Now(),
		Location: t.app.Location,
	})
}

func (t toolset) getTask(ctx context.Context, input taskIDInput) (*queries.TaskDTO, error) {
	if err := t.requireStore("task lookup"); err != nil {
		return nil, err
	}
	if input.TaskID <= 0 {
		return nil, errors.New("task_id must be a positive integer")
	}
	return t.app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: input.TaskID})
}

func (t toolset) updateTask(ctx context.Context, input taskUpdateInput) (*queries.TaskDTO, error) {
	if err := t.requireStore("task update"); err != nil {
		return nil, err
	}
	if input.TaskID <= 0 {
		return nil, errors.New("task_id must be a positive integer")
	}
	err := t.app.UpdateTaskHandler.Handle(ctx, commands.UpdateTaskCommand{
		TaskID:         input.TaskID,
		Title:          input.Title,
		DueDate:        input.DueDate,
		DueTime:        input.DueTime,
		EstimatedHours: input.EstimatedHours,
		Importance:     input.Importance,
		Dependencies:   input.Dependencies,
		Role:           input.Role,
		Notes:          input.Notes,
	})
	if err != nil {
		return nil, err
	}
	return t.app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: input.TaskID})
}

func (t toolset) deleteTask(ctx context.Context, input taskIDInput) (map[string]any, error) {
	if err := t.requireStore("task deletion"); err != nil {
		return nil, err
	}
	if input.TaskID <= 0 {
		return nil, errors.New("task_id must be a positive integer")
	}
	if err := t.app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{TaskID: input.TaskID}); err != nil {
		return nil, err
	}
	return map[string]any{"task_id": input.TaskID, "deleted": true}, nil
}

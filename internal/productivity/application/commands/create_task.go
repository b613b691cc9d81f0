package commands

import (
	"context"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	sharedApplication "github.com/DHariharanD/Smart-Task-Analyser/internal/shared/application"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
)

// CreateTaskCommand holds a new task. Nil and empty fields take the task defaults.
type CreateTaskCommand struct {
	Title          string
	DueDate        string
	DueTime        *string
	EstimatedHours *float64
	Importance     *int
	Dependencies   []int64
	Role           string
	Notes          string
}

// CreateTaskResult carries the store-assigned id.
type CreateTaskResult struct {
	TaskID int64
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

func NewCreateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle validates and stores the task, then queues a TaskCreated event in the
// same transaction.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	t, err := buildTask(cmd)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		t.AddDomainEvent(task.NewTaskCreated(t))
		return publishEvents(txCtx, h.outboxRepo, t)
	})
	if err != nil {
		return nil, err
	}
	return &CreateTaskResult{TaskID: t.ID()}, nil
}

func buildTask(cmd CreateTaskCommand) (*task.Task, error) {
	dueDate, err := task.ParseDueDate(cmd.DueDate)
	if err != nil {
		return nil, err
	}
	t, err := task.NewTask(cmd.Title, dueDate)
	if err != nil {
		return nil, err
	}

	if cmd.DueTime != nil {
		if err := t.SetDueTime(*cmd.DueTime); err != nil {
			return nil, err
		}
	}
	if cmd.EstimatedHours != nil {
		if err := t.SetEstimatedHours(*cmd.EstimatedHours); err != nil {
			return nil, err
		}
	}
	if cmd.Importance != nil {
		if err := t.SetImportance(*cmd.Importance); err != nil {
			return nil, err
		}
	}
	if err := t.SetDependencies(cmd.Dependencies); err != nil {
		return nil, err
	}
	role, err := task.ParseRole(cmd.Role)
	if err != nil {
		return nil, err
	}
	if err := t.SetRole(role); err != nil {
		return nil, err
	}
	t.SetNotes(cmd.Notes)
	return t, nil
}

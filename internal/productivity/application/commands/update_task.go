package commands

import (
	"context"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	sharedApplication "github.com/DHariharanD/Smart-Task-Analyser/internal/shared/application"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
)

// UpdateTaskCommand is a partial update: nil fields are left unchanged.
type UpdateTaskCommand struct {
	TaskID         int64
	Title          *string
	DueDate        *string
	DueTime        *string
	EstimatedHours *float64
	Importance     *int
	Dependencies   *[]int64
	Role           *string
	Notes          *string
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

func NewUpdateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle applies the changes and emits TaskUpdated naming the fields that
// were supplied. A command with no fields is a no-op.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}

		fields, err := applyUpdate(t, cmd)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		t.AddDomainEvent(task.NewTaskUpdated(t, fields))
		return publishEvents(txCtx, h.outboxRepo, t)
	})
}

func applyUpdate(t *task.Task, cmd UpdateTaskCommand) ([]string, error) {
	var fields []string
	apply := func(name string, set bool, fn func() error) error {
		if !set {
			return nil
		}
		if err := fn(); err != nil {
			return err
		}
		fields = append(fields, name)
		return nil
	}

	steps := []struct {
		name string
		set  bool
		fn   func() error
	}{
		{"title", cmd.Title != nil, func() error { return t.SetTitle(*cmd.Title) }},
		{"due_date", cmd.DueDate != nil, func() error {
			d, err := task.ParseDueDate(*cmd.DueDate)
			if err != nil {
				return err
			}
			t.SetDueDate(d)
			return nil
		}},
		{"due_time", cmd.DueTime != nil, func() error { return t.SetDueTime(*cmd.DueTime) }},
		{"estimated_hours", cmd.EstimatedHours != nil, func() error { return t.SetEstimatedHours(*cmd.EstimatedHours) }},
		{"importance", cmd.Importance != nil, func() error { return t.SetImportance(*cmd.Importance) }},
		{"dependencies", cmd.Dependencies != nil, func() error { return t.SetDependencies(*cmd.Dependencies) }},
		{"role", cmd.Role != nil, func() error {
			role, err := task.ParseRole(*cmd.Role)
			if err != nil {
				return err
			}
			return t.SetRole(role)
		}},
		{"notes", cmd.Notes != nil, func() error {
			t.SetNotes(*cmd.Notes)
			return nil
		}},
	}
	for _, s := range steps {
		if err := apply(s.name, s.set, s.fn); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

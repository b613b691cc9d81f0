package commands

import (
	"context"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	sharedApplication "github.com/DHariharanD/Smart-Task-Analyser/internal/shared/application"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
)

// DeleteTaskCommand removes a stored task. Other tasks that list it as a
// dependency keep the dangling id.
type DeleteTaskCommand struct {
	TaskID int64
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

func NewDeleteTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *DeleteTaskHandler {
	return &DeleteTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.taskRepo.Delete(txCtx, cmd.TaskID); err != nil {
			return err
		}
		events := []domain.DomainEvent{task.NewTaskDeleted(cmd.TaskID)}
		return writeOutbox(txCtx, h.outboxRepo, events, func() {})
	})
}

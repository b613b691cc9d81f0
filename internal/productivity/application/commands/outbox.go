package commands

import (
	"context"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	sharedApplication "github.com/DHariharanD/Smart-Task-Analyser/internal/shared/application"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
)

// publishEvents writes the task's pending events to the outbox in the
// caller's transaction and clears them from the aggregate.
func publishEvents(ctx context.Context, repo outbox.Repository, t *task.Task) error {
	return writeOutbox(ctx, repo, t.DomainEvents(), t.ClearDomainEvents)
}

func writeOutbox(ctx context.Context, repo outbox.Repository, events []domain.DomainEvent, done func()) error {
	if len(events) == 0 {
		return nil
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.EventMetadataFromContext(ctx))

	msgs, err := outbox.NewMessages(events)
	if err != nil {
		return err
	}
	if err := repo.SaveBatch(ctx, msgs); err != nil {
		return err
	}
	done()
	return nil
}

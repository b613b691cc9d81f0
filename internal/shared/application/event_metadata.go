package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata creates command-scoped metadata for domain events.
// A nil correlation id (no inbound request id) gets a fresh one.
func NewEventMetadata(correlationID uuid.UUID) domain.EventMetadata {
	if correlationID == uuid.Nil {
		correlationID = uuid.New()
	}
	return domain.EventMetadata{
		CorrelationID: correlationID,
		CausationID:   uuid.New(),
	}
}

// EventMetadataFromContext reuses the request correlation id when it is a UUID.
func EventMetadataFromContext(ctx context.Context) domain.EventMetadata {
	id, err := uuid.Parse(observability.CorrelationIDFromContext(ctx))
	if err != nil {
		id = uuid.Nil
	}
	return NewEventMetadata(id)
}

// ApplyEventMetadata sets metadata on all events that support it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}

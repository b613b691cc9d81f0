package domain_test

import (
	"testing"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()

	event := domain.NewBaseEvent(12, "TestAggregate", "test.event.created")

	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, int64(12), event.AggregateID())
	assert.Equal(t, "TestAggregate", event.AggregateType())
	assert.Equal(t, "test.event.created", event.RoutingKey())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestBaseEvent_SetMetadata(t *testing.T) {
	event := domain.NewBaseEvent(1, "TestAggregate", "test.event.created")
	metadata := domain.EventMetadata{CorrelationID: uuid.New(), CausationID: uuid.New()}

	event.SetMetadata(metadata)

	assert.Equal(t, metadata, event.Metadata())
}

package outbox_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/eventbus"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
)

type taskDeleted struct {
	domain.BaseEvent
	Reason string `json:"reason"`
}

func newTaskDeleted(id int64) *taskDeleted {
	return &taskDeleted{
		BaseEvent: domain.NewBaseEvent(id, "Task", "productivity.task.deleted"),
		Reason:    "duplicate",
	}
}

func TestNewMessage(t *testing.T) {
	event := newTaskDeleted(12)
	correlation := uuid.New()
	event.SetMetadata(domain.EventMetadata{CorrelationID: correlation, CausationID: uuid.New()})

	msg, err := outbox.NewMessage(event)
	require.NoError(t, err)

	assert.Equal(t, event.EventID(), msg.EventID)
	assert.Equal(t, int64(12), msg.AggregateID)
	assert.Equal(t, "Task", msg.AggregateType)
	assert.Equal(t, "productivity.task.deleted", msg.RoutingKey)
	assert.Equal(t, event.OccurredAt(), msg.CreatedAt)
	assert.False(t, msg.IsPublished())
	assert.False(t, msg.IsDead())

	var env eventbus.ConsumedEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &env))
	assert.Equal(t, msg.EventID, env.EventID)
	assert.Equal(t, correlation.String(), env.Metadata.CorrelationID)
	assert.JSONEq(t, `{"reason":"duplicate"}`, string(env.Payload))
}

func TestNewMessages(t *testing.T) {
	msgs, err := outbox.NewMessages([]domain.DomainEvent{newTaskDeleted(1), newTaskDeleted(2)})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(2), msgs[1].AggregateID)

	msgs, err = outbox.NewMessages(nil)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMessage_State(t *testing.T) {
	msg := &outbox.Message{}
	now := time.Now()

	msg.PublishedAt = &now
	assert.True(t, msg.IsPublished())

	msg.DeadLetteredAt = &now
	assert.True(t, msg.IsDead())
}

package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/eventbus"
)

// Message is one row of the outbox. Payload holds the complete envelope that
// will be handed to the publisher.
type Message struct {
	ID               int64
	EventID          uuid.UUID
	AggregateType    string
	AggregateID      int64
	RoutingKey       string
	Payload          json.RawMessage
	CreatedAt        time.Time
	PublishedAt      *time.Time
	NextRetryAt      *time.Time
	RetryCount       int
	LastError        *string
	DeadLetteredAt   *time.Time
	DeadLetterReason *string
}

// NewMessage serializes event into an outbox row.
func NewMessage(event domain.DomainEvent) (*Message, error) {
	env, err := eventbus.Envelope(event)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	return &Message{
		EventID:       env.EventID,
		AggregateType: env.AggregateType,
		AggregateID:   env.AggregateID,
		RoutingKey:    env.RoutingKey,
		Payload:       payload,
		CreatedAt:     env.OccurredAt,
	}, nil
}

// NewMessages converts a batch of events, stopping at the first failure.
func NewMessages(events []domain.DomainEvent) ([]*Message, error) {
	msgs := make([]*Message, 0, len(events))
	for _, e := range events {
		msg, err := NewMessage(e)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func (m *Message) IsPublished() bool { return m.PublishedAt != nil }

func (m *Message) IsDead() bool { return m.DeadLetteredAt != nil }

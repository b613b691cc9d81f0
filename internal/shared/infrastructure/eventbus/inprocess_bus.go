package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/domain"
)

// InProcessBus delivers envelopes synchronously to local consumers. It stands
// in for RabbitMQ when the application runs as a single process.
type InProcessBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
	mu       sync.Mutex
}

func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		registry: NewConsumerRegistry(logger),
		logger:   logger,
	}
}

// RegisterConsumer subscribes consumer to its routing keys.
func (b *InProcessBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish decodes payload and dispatches it. Consumer failures are logged and
// swallowed so a local subscriber can never wedge the outbox.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event, err := Decode(payload, routingKey)
	if err != nil {
		b.logger.Error("dropping undecodable event", "routing_key", routingKey, "error", err)
		return nil
	}
	b.dispatch(ctx, event)
	return nil
}

// PublishEvent wraps a domain event in an envelope and dispatches it.
func (b *InProcessBus) PublishEvent(ctx context.Context, event domain.DomainEvent) error {
	env, err := Envelope(event)
	if err != nil {
		return err
	}
	b.dispatch(ctx, env)
	return nil
}

func (b *InProcessBus) dispatch(ctx context.Context, event *ConsumedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	if err := b.registry.Dispatch(ctx, event); err != nil {
		b.logger.Error("local dispatch failed",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
			"error", err,
		)
		return
	}
	b.logger.Debug("event dispatched",
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// Registry exposes the underlying registry.
func (b *InProcessBus) Registry() *ConsumerRegistry { return b.registry }

func (b *InProcessBus) Close() error { return nil }

package outbox

import (
	"context"
	"time"
)

// Repository persists outbox rows. Save and SaveBatch join the transaction in
// ctx so events commit together with the write that produced them.
type Repository interface {
	Save(ctx context.Context, msg *Message) error
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetUnpublished returns rows due for delivery, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]*Message, error)
	MarkPublished(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error
	MarkDead(ctx context.Context, id int64, reason string) error

	// DeleteOld removes published rows older than the retention window.
	DeleteOld(ctx context.Context, olderThanDays int) (int64, error)
}

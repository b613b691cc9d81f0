package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
)

// SQLiteRepository stores the outbox in the local SQLite database.
type SQLiteRepository struct {
	conn database.Connection
	now  func() time.Time
}

func NewSQLiteRepository(conn database.Connection) *SQLiteRepository {
	return &SQLiteRepository{conn: conn, now: time.Now}
}

func (r *SQLiteRepository) Save(ctx context.Context, msg *Message) error {
	return r.insert(ctx, database.ExecutorFromContext(ctx, r.conn), msg)
}

func (r *SQLiteRepository) insert(ctx context.Context, exec database.Executor, msg *Message) error {
	return exec.QueryRow(ctx, `
		INSERT INTO outbox (event_id, aggregate_type, aggregate_id, routing_key, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		msg.EventID.String(),
		msg.AggregateType,
		msg.AggregateID,
		msg.RoutingKey,
		string(msg.Payload),
		database.FormatTime(msg.CreatedAt),
	).Scan(&msg.ID)
}

func (r *SQLiteRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	return saveBatch(ctx, r.conn, msgs, r.insert)
}

func (r *SQLiteRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, event_id, aggregate_type, aggregate_id, routing_key, payload, created_at,
		       next_retry_at, retry_count, last_error
		FROM outbox
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY created_at, id
		LIMIT ?`, database.FormatTime(r.now()), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var (
			m                  Message
			eventID, payload   string
			createdAt          string
			nextRetryAt, lastE *string
		)
		if err := rows.Scan(&m.ID, &eventID, &m.AggregateType, &m.AggregateID, &m.RoutingKey, &payload,
			&createdAt, &nextRetryAt, &m.RetryCount, &lastE); err != nil {
			return nil, err
		}
		if m.EventID, err = uuid.Parse(eventID); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = database.ParseTime(createdAt); err != nil {
			return nil, err
		}
		if m.NextRetryAt, err = database.ParseNullTime(nextRetryAt); err != nil {
			return nil, err
		}
		m.Payload = []byte(payload)
		m.LastError = lastE
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

func (r *SQLiteRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE outbox SET published_at = ? WHERE id = ?`,
		database.FormatTime(r.now()), id)
	return err
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	_, err := r.conn.Exec(ctx, `
		UPDATE outbox
		SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ?
		WHERE id = ?`, errMsg, database.FormatTime(nextRetryAt), id)
	return err
}

func (r *SQLiteRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	_, err := r.conn.Exec(ctx, `
		UPDATE outbox
		SET retry_count = retry_count + 1, last_error = ?, dead_lettered_at = ?, dead_letter_reason = ?
		WHERE id = ?`, reason, database.FormatTime(r.now()), reason, id)
	return err
}

func (r *SQLiteRepository) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := r.now().AddDate(0, 0, -olderThanDays)
	res, err := r.conn.Exec(ctx, `
		DELETE FROM outbox
		WHERE published_at IS NOT NULL AND published_at < ?`, database.FormatTime(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

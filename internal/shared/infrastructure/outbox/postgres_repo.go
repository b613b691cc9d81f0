package outbox

import (
	"context"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
)

const pgInsert = `
	INSERT INTO outbox (event_id, aggregate_type, aggregate_id, routing_key, payload, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`

const pgColumns = `id, event_id, aggregate_type, aggregate_id, routing_key, payload, created_at,
	published_at, next_retry_at, retry_count, last_error, dead_lettered_at, dead_letter_reason`

// PostgresRepository stores the outbox in PostgreSQL.
type PostgresRepository struct {
	conn database.Connection
}

func NewPostgresRepository(conn database.Connection) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

func (r *PostgresRepository) Save(ctx context.Context, msg *Message) error {
	return r.insert(ctx, database.ExecutorFromContext(ctx, r.conn), msg)
}

func (r *PostgresRepository) insert(ctx context.Context, exec database.Executor, msg *Message) error {
	return exec.QueryRow(ctx, pgInsert,
		msg.EventID,
		msg.AggregateType,
		msg.AggregateID,
		msg.RoutingKey,
		msg.Payload,
		msg.CreatedAt,
	).Scan(&msg.ID)
}

func (r *PostgresRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	return saveBatch(ctx, r.conn, msgs, r.insert)
}

func (r *PostgresRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+pgColumns+`
		FROM outbox
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		ORDER BY created_at, id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.EventID, &m.AggregateType, &m.AggregateID, &m.RoutingKey, &m.Payload, &m.CreatedAt,
			&m.PublishedAt, &m.NextRetryAt, &m.RetryCount, &m.LastError, &m.DeadLetteredAt, &m.DeadLetterReason,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

func (r *PostgresRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE outbox SET published_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	_, err := r.conn.Exec(ctx, `
		UPDATE outbox
		SET retry_count = retry_count + 1, last_error = $2, next_retry_at = $3
		WHERE id = $1`, id, errMsg, nextRetryAt)
	return err
}

func (r *PostgresRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	_, err := r.conn.Exec(ctx, `
		UPDATE outbox
		SET retry_count = retry_count + 1, last_error = $2, dead_lettered_at = NOW(), dead_letter_reason = $2
		WHERE id = $1`, id, reason)
	return err
}

func (r *PostgresRepository) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	res, err := r.conn.Exec(ctx, `
		DELETE FROM outbox
		WHERE published_at IS NOT NULL
		  AND published_at < NOW() - INTERVAL '1 day' * $1`, olderThanDays)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// saveBatch inserts msgs inside the caller's transaction, or a fresh one.
func saveBatch(
	ctx context.Context,
	conn database.Connection,
	msgs []*Message,
	insert func(context.Context, database.Executor, *Message) error,
) error {
	if len(msgs) == 0 {
		return nil
	}
	if info, ok := database.TxInfoFromContext(ctx); ok {
		for _, m := range msgs {
			if err := insert(ctx, info.Tx, m); err != nil {
				return err
			}
		}
		return nil
	}

	tx, err := conn.BeginTx(ctx)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		if err := insert(ctx, tx, m); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	return tx.Commit(ctx)
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
)

const pgTaskColumns = `id, title, to_char(due_date, 'YYYY-MM-DD'), to_char(due_time, 'HH24:MI'),
	estimated_hours, importance, dependencies, role, notes, created_at, updated_at`

// PostgresTaskRepository implements task.Repository using PostgreSQL.
// Dependencies are stored as a BIGINT[] column, written through pq.Array.
type PostgresTaskRepository struct {
	conn database.Connection
}

func NewPostgresTaskRepository(conn database.Connection) *PostgresTaskRepository {
	return &PostgresTaskRepository{conn: conn}
}

// Save inserts transient tasks and assigns their id; stored tasks are updated in place.
func (r *PostgresTaskRepository) Save(ctx context.Context, t *task.Task) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	if t.IsTransient() {
		var id int64
		err := exec.QueryRow(ctx, `
			INSERT INTO tasks (
				title, due_date, due_time, estimated_hours, importance,
				dependencies, role, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			t.Title(),
			t.DueDate().Format(task.DateLayout),
			t.DueTime(),
			t.EstimatedHours(),
			t.Importance(),
			pq.Array(t.Dependencies()),
			string(t.Role()),
			t.Notes(),
			t.CreatedAt(),
			t.UpdatedAt(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		t.AssignID(id)
		return nil
	}

	res, err := exec.Exec(ctx, `
		UPDATE tasks SET
			title = $2, due_date = $3, due_time = $4, estimated_hours = $5, importance = $6,
			dependencies = $7, role = $8, notes = $9, updated_at = $10
		WHERE id = $1`,
		t.ID(),
		t.Title(),
		t.DueDate().Format(task.DateLayout),
		t.DueTime(),
		t.EstimatedHours(),
		t.Importance(),
		pq.Array(t.Dependencies()),
		string(t.Role()),
		t.Notes(),
		t.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID(), err)
	}
	return requireAffected(res)
}

func (r *PostgresTaskRepository) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	t, err := scanPostgresTask(exec.QueryRow(ctx, `SELECT `+pgTaskColumns+` FROM tasks WHERE id = $1`, id))
	if database.IsNoRows(err) {
		return nil, task.ErrTaskNotFound
	}
	return t, err
}

func (r *PostgresTaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+pgTaskColumns+` FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanPostgresTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanPostgresTask(row database.Row) (*task.Task, error) {
	var (
		id                 int64
		title, due, dueAt  string
		hours              float64
		importance         int
		deps               []int64
		role, notes        string
		createdAt, updated time.Time
	)
	if err := row.Scan(&id, &title, &due, &dueAt, &hours, &importance, &deps, &role, &notes, &createdAt, &updated); err != nil {
		return nil, err
	}
	dueDate, err := task.ParseDueDate(due)
	if err != nil {
		return nil, fmt.Errorf("task %d: corrupt due_date %q: %w", id, due, err)
	}
	return task.RehydrateTask(id, title, dueDate, dueAt, hours, importance, deps, task.Role(role), notes, createdAt, updated), nil
}

func requireAffected(res database.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

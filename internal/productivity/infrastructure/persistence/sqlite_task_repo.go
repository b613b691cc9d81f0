package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
)

const sqliteTaskColumns = `id, title, due_date, due_time, estimated_hours, importance,
	dependencies, role, notes, created_at, updated_at`

// SQLiteTaskRepository implements task.Repository on the local SQLite file.
// Dependencies are kept as a JSON array in a TEXT column.
type SQLiteTaskRepository struct {
	conn database.Connection
}

func NewSQLiteTaskRepository(conn database.Connection) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{conn: conn}
}

func (r *SQLiteTaskRepository) Save(ctx context.Context, t *task.Task) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	deps, err := json.Marshal(t.Dependencies())
	if err != nil {
		return err
	}

	if t.IsTransient() {
		var id int64
		err := exec.QueryRow(ctx, `
			INSERT INTO tasks (
				title, due_date, due_time, estimated_hours, importance,
				dependencies, role, notes, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			t.Title(),
			t.DueDate().Format(task.DateLayout),
			t.DueTime(),
			t.EstimatedHours(),
			t.Importance(),
			string(deps),
			string(t.Role()),
			t.Notes(),
			database.FormatTime(t.CreatedAt()),
			database.FormatTime(t.UpdatedAt()),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		t.AssignID(id)
		return nil
	}

	res, err := exec.Exec(ctx, `
		UPDATE tasks SET
			title = ?, due_date = ?, due_time = ?, estimated_hours = ?, importance = ?,
			dependencies = ?, role = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		t.Title(),
		t.DueDate().Format(task.DateLayout),
		t.DueTime(),
		t.EstimatedHours(),
		t.Importance(),
		string(deps),
		string(t.Role()),
		t.Notes(),
		database.FormatTime(t.UpdatedAt()),
		t.ID(),
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID(), err)
	}
	return requireAffected(res)
}

func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	t, err := scanSQLiteTask(exec.QueryRow(ctx, `SELECT `+sqliteTaskColumns+` FROM tasks WHERE id = ?`, id))
	if database.IsNoRows(err) {
		return nil, task.ErrTaskNotFound
	}
	return t, err
}

func (r *SQLiteTaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+sqliteTaskColumns+` FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *SQLiteTaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanSQLiteTask(row database.Row) (*task.Task, error) {
	var (
		id                    int64
		title, due, dueAt     string
		hours                 float64
		importance            int
		depsJSON, role, notes string
		createdAt, updatedAt  string
	)
	if err := row.Scan(&id, &title, &due, &dueAt, &hours, &importance, &depsJSON, &role, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	dueDate, err := task.ParseDueDate(due)
	if err != nil {
		return nil, fmt.Errorf("task %d: corrupt due_date %q: %w", id, due, err)
	}
	var deps []int64
	if err := json.Unmarshal([]byte(depsJSON), &deps); err != nil {
		return nil, fmt.Errorf("task %d: corrupt dependencies: %w", id, err)
	}
	created, err := database.ParseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("task %d: corrupt created_at: %w", id, err)
	}
	updated, err := database.ParseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("task %d: corrupt updated_at: %w", id, err)
	}
	return task.RehydrateTask(id, title, dueDate, dueAt, hours, importance, deps, task.Role(role), notes, created, updated), nil
}

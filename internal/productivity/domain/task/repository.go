package task

import "context"

// Repository defines the interface for task persistence.
type Repository interface {
	// Save inserts a transient task, assigning its id, or updates a stored one.
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id int64) (*Task, error)
	// FindAll returns every task, newest first.
	FindAll(ctx context.Context) ([]*Task, error)
	Delete(ctx context.Context, id int64) error
}

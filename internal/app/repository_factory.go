package app

import (
	"fmt"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	productivityPersistence "github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/infrastructure/persistence"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// TaskRepository creates a task repository for the configured driver.
func (f *RepositoryFactory) TaskRepository() (task.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return productivityPersistence.NewPostgresTaskRepository(f.conn), nil
	case database.DriverSQLite:
		return productivityPersistence.NewSQLiteTaskRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// OutboxRepository creates an outbox repository for the configured driver.
func (f *RepositoryFactory) OutboxRepository() (outbox.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return outbox.NewPostgresRepository(f.conn), nil
	case database.DriverSQLite:
		return outbox.NewSQLiteRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

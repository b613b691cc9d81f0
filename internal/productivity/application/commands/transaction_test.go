package commands_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/infrastructure/persistence"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database/sqlite"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/migrations"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
)

var errRelayTable = errors.New("outbox table locked")

// failingOutbox writes the rows and then fails, so a rollback must undo both.
type failingOutbox struct {
	*outbox.SQLiteRepository
}

func (f failingOutbox) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	if err := f.SQLiteRepository.SaveBatch(ctx, msgs); err != nil {
		return err
	}
	return errRelayTable
}

type store struct {
	conn   database.Connection
	tasks  *persistence.SQLiteTaskRepository
	outbox *outbox.SQLiteRepository
	uow    *database.UnitOfWork
}

func openStore(t *testing.T) store {
	t.Helper()
	ctx := context.Background()
	conn, err := sqlite.Open(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "tasks.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, migrations.Apply(ctx, conn))
	return store{
		conn:   conn,
		tasks:  persistence.NewSQLiteTaskRepository(conn),
		outbox: outbox.NewSQLiteRepository(conn),
		uow:    database.NewUnitOfWork(conn),
	}
}

func TestCreateTask_Transaction(t *testing.T) {
	ctx := context.Background()
	cmd := commands.CreateTaskCommand{Title: "Write report", DueDate: "2030-01-10", Dependencies: []int64{3}}

	t.Run("task and event commit together", func(t *testing.T) {
		s := openStore(t)
		handler := commands.NewCreateTaskHandler(s.tasks, s.outbox, s.uow)

		result, err := handler.Handle(ctx, cmd)
		require.NoError(t, err)

		stored, err := s.tasks.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, result.TaskID, stored[0].ID())

		pending, err := s.outbox.GetUnpublished(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, result.TaskID, pending[0].AggregateID)
	})

	t.Run("outbox failure rolls back the task", func(t *testing.T) {
		s := openStore(t)
		handler := commands.NewCreateTaskHandler(s.tasks, failingOutbox{s.outbox}, s.uow)

		_, err := handler.Handle(ctx, cmd)
		require.ErrorIs(t, err, errRelayTable)

		stored, err := s.tasks.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored)

		pending, err := s.outbox.GetUnpublished(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})
}

func TestDeleteTask_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	created, err := commands.NewCreateTaskHandler(s.tasks, s.outbox, s.uow).
		Handle(ctx, commands.CreateTaskCommand{Title: "Keep me", DueDate: "2030-01-10"})
	require.NoError(t, err)

	err = commands.NewDeleteTaskHandler(s.tasks, failingOutbox{s.outbox}, s.uow).
		Handle(ctx, commands.DeleteTaskCommand{TaskID: created.TaskID})
	require.ErrorIs(t, err, errRelayTable)

	kept, err := s.tasks.FindByID(ctx, created.TaskID)
	require.NoError(t, err)
	assert.Equal(t, "Keep me", kept.Title())
}

package persistence_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/infrastructure/persistence"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database/sqlite"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/migrations"
)

func TestSQLiteTaskRepository(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) (task.Repository, database.Connection) {
		ctx := context.Background()
		conn, err := sqlite.Open(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "tasks.db")})
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })
		require.NoError(t, migrations.Apply(ctx, conn))
		return persistence.NewSQLiteTaskRepository(conn), conn
	})
}

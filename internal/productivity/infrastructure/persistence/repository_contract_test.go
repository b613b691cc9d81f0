package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
)

// repositoryFactory returns an empty repository and the connection behind it.
type repositoryFactory func(t *testing.T) (task.Repository, database.Connection)

func newStoredTask(t *testing.T, title string, due string) *task.Task {
	t.Helper()
	dueDate, err := task.ParseDueDate(due)
	require.NoError(t, err)
	tk, err := task.NewTask(title, dueDate)
	require.NoError(t, err)
	return tk
}

func runRepositoryContract(t *testing.T, factory repositoryFactory) {
	t.Run("save assigns id and round trips", func(t *testing.T) {
		ctx := context.Background()
		repo, _ := factory(t)

		tk := newStoredTask(t, "Fix login bug", "2025-06-12")
		require.NoError(t, tk.SetDueTime("14:30"))
		require.NoError(t, tk.SetEstimatedHours(2.5))
		require.NoError(t, tk.SetImportance(9))
		require.NoError(t, tk.SetRole(task.RoleProgramManager))
		tk.SetNotes("blocked on review")

		require.NoError(t, repo.Save(ctx, tk))
		require.NotZero(t, tk.ID())

		dep := newStoredTask(t, "Ship release", "2025-06-20")
		require.NoError(t, dep.SetDependencies([]int64{tk.ID()}))
		require.NoError(t, repo.Save(ctx, dep))
		assert.Greater(t, dep.ID(), tk.ID())

		found, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, "Fix login bug", found.Title())
		assert.Equal(t, "2025-06-12", found.DueDate().Format(task.DateLayout))
		assert.Equal(t, "14:30", found.DueTime())
		assert.InDelta(t, 2.5, found.EstimatedHours(), 1e-9)
		assert.Equal(t, 9, found.Importance())
		assert.Equal(t, task.RoleProgramManager, found.Role())
		assert.Equal(t, "blocked on review", found.Notes())
		assert.Empty(t, found.Dependencies())
		assert.WithinDuration(t, tk.CreatedAt(), found.CreatedAt(), time.Millisecond)

		found, err = repo.FindByID(ctx, dep.ID())
		require.NoError(t, err)
		assert.Equal(t, []int64{tk.ID()}, found.Dependencies())
	})

	t.Run("update persists changes", func(t *testing.T) {
		ctx := context.Background()
		repo, _ := factory(t)

		tk := newStoredTask(t, "Draft roadmap", "2025-07-01")
		require.NoError(t, repo.Save(ctx, tk))

		require.NoError(t, tk.SetTitle("Draft Q3 roadmap"))
		require.NoError(t, tk.SetDependencies([]int64{40, 41}))
		require.NoError(t, repo.Save(ctx, tk))

		found, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, "Draft Q3 roadmap", found.Title())
		assert.Equal(t, []int64{40, 41}, found.Dependencies())
	})

	t.Run("find all is newest first", func(t *testing.T) {
		ctx := context.Background()
		repo, _ := factory(t)

		for _, title := range []string{"first", "second", "third"} {
			require.NoError(t, repo.Save(ctx, newStoredTask(t, title, "2025-07-01")))
		}

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"third", "second", "first"}, []string{all[0].Title(), all[1].Title(), all[2].Title()})
	})

	t.Run("missing tasks", func(t *testing.T) {
		ctx := context.Background()
		repo, _ := factory(t)

		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, 999), task.ErrTaskNotFound)

		ghost := task.RehydrateTask(999, "ghost", time.Now(), "23:59", 1, 5, nil, task.RoleDeveloper, "", time.Now(), time.Now())
		assert.ErrorIs(t, repo.Save(ctx, ghost), task.ErrTaskNotFound)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("delete and transactional rollback", func(t *testing.T) {
		ctx := context.Background()
		repo, conn := factory(t)
		uow := database.NewUnitOfWork(conn)

		kept := newStoredTask(t, "kept", "2025-07-01")
		require.NoError(t, repo.Save(ctx, kept))

		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.Save(txCtx, newStoredTask(t, "rolled back", "2025-07-02")))
		require.NoError(t, repo.Delete(txCtx, kept.ID()))
		require.NoError(t, uow.Rollback(txCtx))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "kept", all[0].Title())

		require.NoError(t, repo.Delete(ctx, kept.ID()))
		_, err = repo.FindByID(ctx, kept.ID())
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

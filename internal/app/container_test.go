package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/eventbus"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/config"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppEnv:             "development",
		Timezone:           "UTC",
		DatabaseDriver:     "sqlite",
		SQLitePath:         filepath.Join(t.TempDir(), "tasks.db"),
		OutboxPollInterval: 10 * time.Millisecond,
		OutboxBatchSize:    10,
		OutboxMaxRetries:   3,
	}
}

func newLocalContainer(t *testing.T) *Container {
	t.Helper()
	c, err := NewContainer(context.Background(), localConfig(t), observability.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewContainer_SQLite(t *testing.T) {
	c := newLocalContainer(t)

	assert.Equal(t, database.DriverSQLite, c.DBDriver)
	assert.NotNil(t, c.TaskRepo)
	assert.NotNil(t, c.OutboxRepo)
	assert.NotNil(t, c.Engine)
	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.RateLimiter)

	health := c.Health.GetOverallHealth(context.Background())
	assert.Equal(t, observability.HealthStatusHealthy, health.Status)
}

func TestNewContainer_TimezoneSharedByEngineAndGuard(t *testing.T) {
	cfg := localConfig(t)
	cfg.Timezone = "Asia/Kolkata"

	c, err := NewContainer(context.Background(), cfg, observability.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, "Asia/Kolkata", c.Engine.Location().String())
	assert.Same(t, c.Engine.Location(), c.DependencyGuard.Location())
}

func TestNewContainer_InvalidTimezone(t *testing.T) {
	cfg := localConfig(t)
	cfg.Timezone = "Mars/Olympus_Mons"

	_, err := NewContainer(context.Background(), cfg, observability.DiscardLogger())
	require.Error(t, err)
}

func TestNewContainer_UnknownDriver(t *testing.T) {
	cfg := localConfig(t)
	cfg.DatabaseDriver = "oracle"

	_, err := NewContainer(context.Background(), cfg, observability.DiscardLogger())
	require.Error(t, err)
}

func TestContainer_StoredTaskFlow(t *testing.T) {
	c := newLocalContainer(t)
	ctx := context.Background()

	first, err := c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		Title:   "Write report",
		DueDate: time.Now().UTC().Format("2006-01-02"),
	})
	require.NoError(t, err)

	_, err = c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		Title:        "Send report",
		DueDate:      time.Now().UTC().AddDate(0, 0, 5).Format("2006-01-02"),
		Dependencies: []int64{first.TaskID},
	})
	require.NoError(t, err)

	analysis, err := c.AnalyzeTasksHandler.Handle(ctx, prioritizationQueries.AnalyzeTasksQuery{UseStored: true})
	require.NoError(t, err)
	require.Len(t, analysis.Tasks, 2)
	assert.Equal(t, "Write report", analysis.Tasks[0].Title)

	publisher, err := c.EventPublisher()
	require.NoError(t, err)
	_, ok := publisher.(*eventbus.InProcessBus)
	assert.True(t, ok)

	processor := c.NewOutboxProcessor(publisher)
	require.NoError(t, processor.ProcessOnce(ctx))
	assert.Equal(t, uint64(2), processor.GetStats().PublishedCount)

	pending, err := c.OutboxRepo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestContainer_DependencyGuardSeesCycle(t *testing.T) {
	c := newLocalContainer(t)
	ctx := context.Background()
	due := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")

	a, err := c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{Title: "A", DueDate: due})
	require.NoError(t, err)
	b, err := c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		Title: "B", DueDate: due, Dependencies: []int64{a.TaskID},
	})
	require.NoError(t, err)

	deps := []int64{b.TaskID}
	err = c.UpdateTaskHandler.Handle(ctx, commands.UpdateTaskCommand{TaskID: a.TaskID, Dependencies: &deps})
	require.NoError(t, err)

	publisher, err := c.EventPublisher()
	require.NoError(t, err)
	require.NoError(t, c.NewOutboxProcessor(publisher).ProcessOnce(ctx))

	alert := c.DependencyGuard.LastAlert()
	require.NotNil(t, alert)
	assert.Equal(t, domain.TaskIDFromInt(a.TaskID), alert.TaskID)
	assert.NotEmpty(t, alert.Report.Cycles)
}

package task

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	internalApp "github.com/DHariharanD/Smart-Task-Analyser/internal/app"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/config"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

// setupTestApp opens a SQLite-backed app in a temp directory.
func setupTestApp(t *testing.T) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:         "test",
		Timezone:       "UTC",
		DatabaseDriver: "sqlite",
		SQLitePath:     filepath.Join(t.TempDir(), "tasks.db"),
	}
	cli.SetConfig(cfg)
	cli.SetLogger(observability.DiscardLogger())

	container, err := internalApp.NewContainer(context.Background(), cfg, observability.DiscardLogger())
	require.NoError(t, err)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(cli.Shutdown)
	return app
}

// resetFlags clears flag values left over from earlier executions.
func resetFlags(cmd *cobra.Command) {
	for _, c := range append([]*cobra.Command{cmd}, cmd.Commands()...) {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(Cmd)
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetArgs(args)
	err := Cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func day(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
}

func listAll(t *testing.T, app *cli.App) []queries.TaskDTO {
	t.Helper()
	tasks, err := app.ListTasksHandler.Handle(context.Background(), queries.ListTasksQuery{})
	require.NoError(t, err)
	return tasks
}

func TestTaskAdd(t *testing.T) {
	app := setupTestApp(t)

	out, err := run(t, "add", "Fix login bug", "--due", day(2), "--hours", "2.5", "--importance", "8", "--notes", "prod only")
	require.NoError(t, err)
	assert.Contains(t, out, "Task added: 1")

	tasks := listAll(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fix login bug", tasks[0].Title)
	assert.Equal(t, day(2), tasks[0].DueDate)
	assert.Equal(t, 2.5, tasks[0].EstimatedHours)
	assert.Equal(t, 8, tasks[0].Importance)
	assert.Equal(t, "developer", tasks[0].Role)
	assert.Equal(t, "prod only", tasks[0].Notes)
}

func TestTaskAdd_Defaults(t *testing.T) {
	app := setupTestApp(t)

	_, err := run(t, "add", "Plain", "--due", day(1))
	require.NoError(t, err)

	tasks := listAll(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, 1.0, tasks[0].EstimatedHours)
	assert.Equal(t, 5, tasks[0].Importance)
	assert.Empty(t, tasks[0].Dependencies)
}

func TestTaskAdd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing due", args: []string{"add", "No date"}, wantErr: "due"},
		{name: "bad date", args: []string{"add", "Bad", "--due", "2025-13-45"}, wantErr: "failed to add task"},
		{name: "importance out of range", args: []string{"add", "Bad", "--due", day(1), "--importance", "11"}, wantErr: "importance"},
		{name: "bad dependency", args: []string{"add", "Bad", "--due", day(1), "--depends", "x"}, wantErr: "invalid dependency"},
		{name: "unknown role", args: []string{"add", "Bad", "--due", day(1), "--role", "ceo"}, wantErr: "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestApp(t)
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTaskList(t *testing.T) {
	setupTestApp(t)

	_, err := run(t, "add", "Late", "--due", day(-2))
	require.NoError(t, err)
	_, err = run(t, "add", "Later", "--due", day(5), "--role", "program_manager")
	require.NoError(t, err)

	tests := []struct {
		name      string
		args      []string
		wantTitle []string
	}{
		{name: "all", args: nil, wantTitle: []string{"Late", "Later"}},
		{name: "overdue", args: []string{"--overdue"}, wantTitle: []string{"Late"}},
		{name: "role", args: []string{"--role", "program_manager"}, wantTitle: []string{"Later"}},
		{name: "limit", args: []string{"--limit", "1"}, wantTitle: []string{"Late"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"list", "--json"}, tt.args...)...)
			require.NoError(t, err)

			var tasks []queries.TaskDTO
			require.NoError(t, json.Unmarshal([]byte(out), &tasks))
			titles := make([]string, len(tasks))
			for i, task := range tasks {
				titles[i] = task.Title
			}
			assert.Equal(t, tt.wantTitle, titles)
		})
	}
}

func TestTaskList_Empty(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found.")
}

func TestTaskShow(t *testing.T) {
	setupTestApp(t)

	_, err := run(t, "add", "Base", "--due", day(1))
	require.NoError(t, err)
	_, err = run(t, "add", "Follow-up", "--due", day(3), "--depends", "1")
	require.NoError(t, err)

	out, err := run(t, "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Follow-up")
	assert.Contains(t, out, "Depends on:   1")

	_, err = run(t, "show", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = run(t, "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task ID")
}

func TestTaskUpdate(t *testing.T) {
	app := setupTestApp(t)

	_, err := run(t, "add", "Draft", "--due", day(1), "--importance", "4", "--depends", "7")
	require.NoError(t, err)

	out, err := run(t, "update", "1", "--title", "Final", "--importance", "9", "--depends", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Task updated: 1")

	tasks := listAll(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Final", tasks[0].Title)
	assert.Equal(t, 9, tasks[0].Importance)
	assert.Empty(t, tasks[0].Dependencies)
	assert.Equal(t, day(1), tasks[0].DueDate)

	_, err = run(t, "update", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")

	_, err = run(t, "update", "42", "--title", "Ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTaskDelete(t *testing.T) {
	app := setupTestApp(t)

	_, err := run(t, "add", "Temp", "--due", day(1))
	require.NoError(t, err)

	out, err := run(t, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Task deleted: 1")
	assert.Empty(t, listAll(t, app))

	_, err = run(t, "delete", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseDependencies(t *testing.T) {
	tests := []struct {
		in      string
		want    []int64
		wantErr bool
	}{
		{in: "", want: []int64{}},
		{in: "1", want: []int64{1}},
		{in: " 1, 2 ,3", want: []int64{1, 2, 3}},
		{in: "1,,2", want: []int64{1, 2}},
		{in: "0", wantErr: true},
		{in: "a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDependencies(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

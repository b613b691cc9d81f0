package queries

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

// mockTaskRepo is a mock implementation of task.Repository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindAll(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var created = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func createTestTask(id int64, title, due string, role task.Role) *task.Task {
	d, _ := time.Parse(task.DateLayout, due)
	return task.RehydrateTask(id, title, d, "17:00", 2, 6, []int64{}, role, "", created, created)
}

func TestListTasksHandler_Handle(t *testing.T) {
	tasks := []*task.Task{
		createTestTask(3, "Review", "2025-03-10", task.RoleProgramManager),
		createTestTask(2, "Fix bug", "2025-02-20", task.RoleDeveloper),
		createTestTask(1, "Plan sprint", "2025-02-01", task.RoleProgramManager),
	}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		query   ListTasksQuery
		wantIDs []int64
	}{
		{"all tasks keep store order", ListTasksQuery{}, []int64{3, 2, 1}},
		{"filter by role", ListTasksQuery{Role: "program_manager"}, []int64{3, 1}},
		{"overdue only", ListTasksQuery{Overdue: true, Now: now}, []int64{2, 1}},
		{"overdue and role", ListTasksQuery{Overdue: true, Now: now, Role: "developer"}, []int64{2}},
		{"limit", ListTasksQuery{Limit: 2}, []int64{3, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockTaskRepo)
			repo.On("FindAll", mock.Anything).Return(tasks, nil)

			result, err := NewListTasksHandler(repo).Handle(context.Background(), tc.query)
			require.NoError(t, err)

			ids := make([]int64, 0, len(result))
			for _, dto := range result {
				ids = append(ids, dto.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}

	t.Run("invalid role", func(t *testing.T) {
		repo := new(mockTaskRepo)
		repo.On("FindAll", mock.Anything).Return(tasks, nil)

		_, err := NewListTasksHandler(repo).Handle(context.Background(), ListTasksQuery{Role: "qa"})
		assert.ErrorIs(t, err, task.ErrInvalidRole)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockTaskRepo)
		repo.On("FindAll", mock.Anything).Return(nil, errors.New("db down"))

		_, err := NewListTasksHandler(repo).Handle(context.Background(), ListTasksQuery{})
		assert.EqualError(t, err, "db down")
	})

	t.Run("empty store yields empty slice", func(t *testing.T) {
		repo := new(mockTaskRepo)
		repo.On("FindAll", mock.Anything).Return([]*task.Task{}, nil)

		result, err := NewListTasksHandler(repo).Handle(context.Background(), ListTasksQuery{})
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestGetTaskHandler_Handle(t *testing.T) {
	t.Run("returns dto", func(t *testing.T) {
		repo := new(mockTaskRepo)
		repo.On("FindByID", mock.Anything, int64(2)).
			Return(createTestTask(2, "Fix bug", "2025-02-20", task.RoleDeveloper), nil)

		dto, err := NewGetTaskHandler(repo).Handle(context.Background(), GetTaskQuery{TaskID: 2})
		require.NoError(t, err)
		assert.Equal(t, "Fix bug", dto.Title)
		assert.Equal(t, "2025-02-20", dto.DueDate)
		assert.Equal(t, "17:00", dto.DueTime)
		assert.Equal(t, "developer", dto.Role)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockTaskRepo)
		repo.On("FindByID", mock.Anything, int64(9)).Return(nil, task.ErrTaskNotFound)

		_, err := NewGetTaskHandler(repo).Handle(context.Background(), GetTaskQuery{TaskID: 9})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestTaskDTO_JSON(t *testing.T) {
	dto := ToTaskDTO(createTestTask(1, "Plan", "2025-02-01", task.RoleDeveloper))

	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"id", "title", "due_date", "due_time", "estimated_hours", "importance", "dependencies", "role", "notes", "created_at"} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, []any{}, fields["dependencies"])
}

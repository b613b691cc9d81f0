package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
)

func TestUpdateTaskHandler_Handle(t *testing.T) {
	t.Run("applies supplied fields and records them", func(t *testing.T) {
		f := newFixture()
		f.expectCommit()

		existing := storedTask(3, "Draft")
		f.taskRepo.On("FindByID", f.txCtx, int64(3)).Return(existing, nil)
		f.taskRepo.On("Save", f.txCtx, existing).Return(nil)

		var msgs []*outbox.Message
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).
			Run(func(args mock.Arguments) { msgs = args.Get(1).([]*outbox.Message) }).
			Return(nil)

		handler := NewUpdateTaskHandler(f.taskRepo, f.outboxRepo, f.uow)
		err := handler.Handle(f.ctx, UpdateTaskCommand{
			TaskID:       3,
			Title:        ptr("Final"),
			Importance:   ptr(8),
			Dependencies: ptr([]int64{1}),
		})
		require.NoError(t, err)

		assert.Equal(t, "Final", existing.Title())
		assert.Equal(t, 8, existing.Importance())
		assert.Equal(t, []int64{1}, existing.Dependencies())

		require.Len(t, msgs, 1)
		assert.Equal(t, task.RoutingKeyUpdated, msgs[0].RoutingKey)
		var envelope struct {
			Payload struct {
				Fields []string `json:"fields"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &envelope))
		assert.Equal(t, []string{"title", "importance", "dependencies"}, envelope.Payload.Fields)
	})

	t.Run("empty update commits without writing", func(t *testing.T) {
		f := newFixture()
		f.expectCommit()
		f.taskRepo.On("FindByID", f.txCtx, int64(3)).Return(storedTask(3, "Draft"), nil)

		handler := NewUpdateTaskHandler(f.taskRepo, f.outboxRepo, f.uow)
		require.NoError(t, handler.Handle(f.ctx, UpdateTaskCommand{TaskID: 3}))

		f.taskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.outboxRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("missing task", func(t *testing.T) {
		f := newFixture()
		f.expectRollback()
		f.taskRepo.On("FindByID", f.txCtx, int64(99)).Return(nil, task.ErrTaskNotFound)

		handler := NewUpdateTaskHandler(f.taskRepo, f.outboxRepo, f.uow)
		err := handler.Handle(f.ctx, UpdateTaskCommand{TaskID: 99, Title: ptr("x")})

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
		f.uow.AssertExpectations(t)
	})

	invalid := []struct {
		name    string
		cmd     UpdateTaskCommand
		wantErr error
	}{
		{"title", UpdateTaskCommand{TaskID: 3, Title: ptr("")}, task.ErrEmptyTitle},
		{"due date", UpdateTaskCommand{TaskID: 3, DueDate: ptr("2025-13-01")}, task.ErrInvalidDueDate},
		{"due time", UpdateTaskCommand{TaskID: 3, DueTime: ptr("9am")}, task.ErrInvalidDueTime},
		{"role", UpdateTaskCommand{TaskID: 3, Role: ptr("manager")}, task.ErrInvalidRole},
	}
	for _, tc := range invalid {
		t.Run("rejects invalid "+tc.name, func(t *testing.T) {
			f := newFixture()
			f.expectRollback()
			f.taskRepo.On("FindByID", f.txCtx, int64(3)).Return(storedTask(3, "Draft"), nil)

			handler := NewUpdateTaskHandler(f.taskRepo, f.outboxRepo, f.uow)
			err := handler.Handle(f.ctx, tc.cmd)

			assert.ErrorIs(t, err, tc.wantErr)
			f.taskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

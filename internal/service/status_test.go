package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/simbadocs/docparse/internal/domain/model"
	apperrors "github.com/simbadocs/docparse/internal/errors"
	"github.com/simbadocs/docparse/internal/mocks"
)

func newStatusFixture(t *testing.T) (*mocks.MockStatusStore, *StatusService) {
	t.Helper()
	store := mocks.NewMockStatusStore(gomock.NewController(t))
	return store, MustNewStatusService(StatusServiceOptions{Store: store})
}

func TestStatusService_GetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("passes through stored status", func(t *testing.T) {
		store, svc := newStatusFixture(t)
		store.EXPECT().Get(ctx, "task-1").Return(&model.TaskStatus{
			TaskID: "task-1",
			State:  model.TaskStateStarted,
		}, nil)

		status, err := svc.GetStatus(ctx, StatusQuery{TaskID: "task-1"})
		require.NoError(t, err)
		assert.Equal(t, model.TaskStateStarted, status.State)
	})

	t.Run("unknown identifier is not an error", func(t *testing.T) {
		store, svc := newStatusFixture(t)
		store.EXPECT().Get(ctx, "ghost").Return(&model.TaskStatus{
			TaskID: "ghost",
			State:  model.TaskStateUnknown,
		}, nil)

		status, err := svc.GetStatus(ctx, StatusQuery{TaskID: "ghost"})
		require.NoError(t, err)
		assert.Equal(t, model.TaskStateUnknown, status.State)
	})

	t.Run("terminal reads are stable across repeated queries", func(t *testing.T) {
		store, svc := newStatusFixture(t)
		stored := &model.TaskStatus{
			TaskID: "task-1",
			State:  model.TaskStateSuccess,
			Result: json.RawMessage(`{"markdown":"# hi"}`),
		}
		store.EXPECT().Get(ctx, "task-1").Return(stored, nil).Times(3)

		for i := 0; i < 3; i++ {
			status, err := svc.GetStatus(ctx, StatusQuery{TaskID: "task-1"})
			require.NoError(t, err)
			assert.Equal(t, model.TaskStateSuccess, status.State)
			assert.JSONEq(t, `{"markdown":"# hi"}`, string(status.Result))
		}
	})

	t.Run("empty task id is a validation error", func(t *testing.T) {
		_, svc := newStatusFixture(t)

		_, err := svc.GetStatus(ctx, StatusQuery{})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "task_id", apperrors.GetField(err))
	})

	t.Run("store failure is internal", func(t *testing.T) {
		store, svc := newStatusFixture(t)
		store.EXPECT().Get(ctx, "task-1").Return(nil, errors.New("redis down"))

		_, err := svc.GetStatus(ctx, StatusQuery{TaskID: "task-1"})
		require.Error(t, err)
		assert.True(t, apperrors.IsInternal(err))
	})
}

func TestStatusService_GetStatus_Select(t *testing.T) {
	ctx := context.Background()

	t.Run("projects a success result", func(t *testing.T) {
		store, svc := newStatusFixture(t)
		store.EXPECT().Get(ctx, "task-1").Return(&model.TaskStatus{
			TaskID: "task-1",
			State:  model.TaskStateSuccess,
			Result: json.RawMessage(`{"schema":"docling.blocks.v1","blocks":[{"type":"heading","text":"Report"}]}`),
		}, nil)

		status, err := svc.GetStatus(ctx, StatusQuery{TaskID: "task-1", Select: "blocks[0].text"})
		require.NoError(t, err)
		assert.JSONEq(t, `"Report"`, string(status.Result))
	})

	t.Run("invalid expression fails before the store is read", func(t *testing.T) {
		_, svc := newStatusFixture(t)

		_, err := svc.GetStatus(ctx, StatusQuery{TaskID: "task-1", Select: "blocks["})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "select", apperrors.GetField(err))
	})

	t.Run("select is ignored for non-terminal states", func(t *testing.T) {
		store, svc := newStatusFixture(t)
		store.EXPECT().Get(ctx, "task-1").Return(&model.TaskStatus{
			TaskID: "task-1",
			State:  model.TaskStatePending,
		}, nil)

		status, err := svc.GetStatus(ctx, StatusQuery{TaskID: "task-1", Select: "blocks"})
		require.NoError(t, err)
		assert.Equal(t, model.TaskStatePending, status.State)
		assert.Nil(t, status.Result)
	})

	t.Run("select is ignored for failures", func(t *testing.T) {
		store, svc := newStatusFixture(t)
		msg := "parse exploded"
		store.EXPECT().Get(ctx, "task-1").Return(&model.TaskStatus{
			TaskID: "task-1",
			State:  model.TaskStateFailure,
			Error:  &msg,
		}, nil)

		status, err := svc.GetStatus(ctx, StatusQuery{TaskID: "task-1", Select: "blocks"})
		require.NoError(t, err)
		require.NotNil(t, status.Error)
		assert.Equal(t, "parse exploded", *status.Error)
	})
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/simbadocs/docparse/internal/domain/model"
	apperrors "github.com/simbadocs/docparse/internal/errors"
	"github.com/simbadocs/docparse/internal/mocks"
	"github.com/simbadocs/docparse/internal/testutil"
)

func newFleetFixture(t *testing.T) (*mocks.MockFleetSource, *FleetService) {
	t.Helper()
	source := mocks.NewMockFleetSource(gomock.NewController(t))
	return source, MustNewFleetService(FleetServiceOptions{Source: source})
}

func fullFleetExpectations(source *mocks.MockFleetSource) {
	source.EXPECT().ActiveTasks(gomock.Any()).Return(map[string][]model.TaskRef{
		"worker-a": {{TaskID: "t1", DocumentID: "d1", Parser: model.ParserMarkitdown}},
	}, nil)
	source.EXPECT().ReservedTasks(gomock.Any()).Return(map[string][]model.TaskRef{
		"worker-a": {{TaskID: "t2", DocumentID: "d2", Parser: model.ParserDocling}},
	}, nil)
	source.EXPECT().ScheduledTasks(gomock.Any()).Return([]model.ScheduledTask{
		{TaskRef: model.TaskRef{TaskID: "t3"}, ETA: testutil.TestTime()},
	}, nil)
	source.EXPECT().RegisteredCapabilities(gomock.Any()).Return(map[string][]model.ParserName{
		"worker-a": {model.ParserMarkitdown, model.ParserDocling},
	}, nil)
}

func TestFleetService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("collects all categories", func(t *testing.T) {
		source, svc := newFleetFixture(t)
		fullFleetExpectations(source)
		source.EXPECT().WorkerStats(gomock.Any()).Return(map[string]model.WorkerStats{
			"worker-a": {Processed: 5, Failed: 1, Concurrency: 4},
		}, nil)

		snap, err := svc.Snapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, snap.Active["worker-a"], 1)
		assert.Len(t, snap.Reserved["worker-a"], 1)
		assert.Len(t, snap.Scheduled, 1)
		assert.Len(t, snap.Registered["worker-a"], 2)
		require.NotNil(t, snap.Stats)
		assert.EqualValues(t, 5, snap.Stats["worker-a"].Processed)
	})

	t.Run("stats failure leaves stats unset, rest intact", func(t *testing.T) {
		source, svc := newFleetFixture(t)
		fullFleetExpectations(source)
		source.EXPECT().WorkerStats(gomock.Any()).Return(nil, errors.New("stats backend down"))

		snap, err := svc.Snapshot(ctx)
		require.NoError(t, err, "missing stats never fails the snapshot")
		assert.Nil(t, snap.Stats)
		assert.Len(t, snap.Active["worker-a"], 1)
		assert.Len(t, snap.Registered["worker-a"], 2)
	})

	t.Run("one failing category comes back empty, others survive", func(t *testing.T) {
		source, svc := newFleetFixture(t)
		source.EXPECT().ActiveTasks(gomock.Any()).Return(nil, errors.New("read failed"))
		source.EXPECT().ReservedTasks(gomock.Any()).Return(map[string][]model.TaskRef{
			"worker-a": {{TaskID: "t2"}},
		}, nil)
		source.EXPECT().ScheduledTasks(gomock.Any()).Return([]model.ScheduledTask{}, nil)
		source.EXPECT().RegisteredCapabilities(gomock.Any()).Return(map[string][]model.ParserName{}, nil)
		source.EXPECT().WorkerStats(gomock.Any()).Return(map[string]model.WorkerStats{}, nil)

		snap, err := svc.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, snap.Active)
		assert.Len(t, snap.Reserved["worker-a"], 1)
	})

	t.Run("every category failing surfaces an error", func(t *testing.T) {
		source, svc := newFleetFixture(t)
		down := errors.New("redis unreachable")
		source.EXPECT().ActiveTasks(gomock.Any()).Return(nil, down)
		source.EXPECT().ReservedTasks(gomock.Any()).Return(nil, down)
		source.EXPECT().ScheduledTasks(gomock.Any()).Return(nil, down)
		source.EXPECT().RegisteredCapabilities(gomock.Any()).Return(nil, down)
		source.EXPECT().WorkerStats(gomock.Any()).Return(nil, down)

		snap, err := svc.Snapshot(ctx)
		require.Error(t, err, "an unreachable store must not look like an idle fleet")
		assert.Nil(t, snap)
		assert.Equal(t, apperrors.ErrCodeInternal, apperrors.GetCode(err))
	})

	t.Run("idle fleet yields an empty snapshot", func(t *testing.T) {
		source, svc := newFleetFixture(t)
		source.EXPECT().ActiveTasks(gomock.Any()).Return(map[string][]model.TaskRef{}, nil)
		source.EXPECT().ReservedTasks(gomock.Any()).Return(map[string][]model.TaskRef{}, nil)
		source.EXPECT().ScheduledTasks(gomock.Any()).Return([]model.ScheduledTask{}, nil)
		source.EXPECT().RegisteredCapabilities(gomock.Any()).Return(map[string][]model.ParserName{}, nil)
		source.EXPECT().WorkerStats(gomock.Any()).Return(map[string]model.WorkerStats{}, nil)

		snap, err := svc.Snapshot(ctx)
		require.NoError(t, err)
		assert.NotNil(t, snap.Active)
		assert.Empty(t, snap.Active)
		assert.Empty(t, snap.Scheduled)
	})
}

package parseworker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/simbadocs/docparse/internal/data"
	"github.com/simbadocs/docparse/internal/domain/model"
	"github.com/simbadocs/docparse/internal/mocks"
	"github.com/simbadocs/docparse/internal/parsers"
)

type runnerFixture struct {
	queue     *mocks.MockWorkerQueue
	fleet     *mocks.MockWorkerRegistry
	documents *mocks.MockDocumentRepository
	runner    *Runner
}

func newRunnerFixture(t *testing.T, mutate func(*RunnerOptions)) *runnerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &runnerFixture{
		queue:     mocks.NewMockWorkerQueue(ctrl),
		fleet:     mocks.NewMockWorkerRegistry(ctrl),
		documents: mocks.NewMockDocumentRepository(ctrl),
	}
	opts := RunnerOptions{
		Queue:     f.queue,
		Fleet:     f.fleet,
		Documents: f.documents,
		Name:      "test-worker",
	}
	if mutate != nil {
		mutate(&opts)
	}
	runner, err := NewRunner(opts)
	require.NoError(t, err)
	f.runner = runner
	return f
}

func testTaskEnvelope() *model.TaskEnvelope {
	return &model.TaskEnvelope{
		TaskID:     "task-1",
		DocumentID: "doc-1",
		Parser:     model.ParserMarkitdown,
	}
}

func TestNewRunner(t *testing.T) {
	t.Run("requires queue, fleet and documents", func(t *testing.T) {
		_, err := NewRunner(RunnerOptions{})
		require.Error(t, err)

		ctrl := gomock.NewController(t)
		_, err = NewRunner(RunnerOptions{Queue: mocks.NewMockWorkerQueue(ctrl)})
		require.Error(t, err)

		_, err = NewRunner(RunnerOptions{
			Queue: mocks.NewMockWorkerQueue(ctrl),
			Fleet: mocks.NewMockWorkerRegistry(ctrl),
		})
		require.Error(t, err)
	})

	t.Run("defaults are applied", func(t *testing.T) {
		f := newRunnerFixture(t, func(o *RunnerOptions) { o.Name = "" })
		assert.NotEmpty(t, f.runner.Name())
		assert.Equal(t, 1, f.runner.concurrency)
		assert.Equal(t, data.DefaultHeartbeatTTL, f.runner.heartbeatTTL)
	})
}

func TestRunner_ProcessTask(t *testing.T) {
	ctx := context.Background()

	t.Run("successful parse completes and acks", func(t *testing.T) {
		f := newRunnerFixture(t, nil)
		env := testTaskEnvelope()

		f.queue.EXPECT().MarkStarted(ctx, "task-1", "test-worker").Return(true, nil)
		f.fleet.EXPECT().TrackActive(ctx, "test-worker", model.TaskRef{
			TaskID: "task-1", DocumentID: "doc-1", Parser: model.ParserMarkitdown,
		}).Return(nil)
		f.documents.EXPECT().GetByID(gomock.Any(), "doc-1").Return(&model.Document{
			ID:          "doc-1",
			Filename:    "notes.txt",
			ContentType: "text/plain",
			Content:     []byte("hello world"),
		}, nil)
		f.queue.EXPECT().
			Complete(ctx, "task-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, result json.RawMessage) (bool, error) {
				assert.Contains(t, string(result), "hello world")
				return true, nil
			})
		f.fleet.EXPECT().UntrackActive(ctx, "test-worker", "task-1").Return(nil)
		f.queue.EXPECT().Ack(ctx, "test-worker", "task-1").Return(nil)

		f.runner.processTask(ctx, env)
		assert.EqualValues(t, 1, f.runner.processed.Load())
		assert.EqualValues(t, 0, f.runner.failed.Load())
	})

	t.Run("lost start race acks without executing", func(t *testing.T) {
		f := newRunnerFixture(t, nil)

		f.queue.EXPECT().MarkStarted(ctx, "task-1", "test-worker").Return(false, nil)
		f.queue.EXPECT().Ack(ctx, "test-worker", "task-1").Return(nil)

		f.runner.processTask(ctx, testTaskEnvelope())
		assert.EqualValues(t, 0, f.runner.processed.Load())
	})

	t.Run("missing document records a failure", func(t *testing.T) {
		f := newRunnerFixture(t, nil)

		f.queue.EXPECT().MarkStarted(ctx, "task-1", "test-worker").Return(true, nil)
		f.fleet.EXPECT().TrackActive(ctx, "test-worker", gomock.Any()).Return(nil)
		f.documents.EXPECT().GetByID(gomock.Any(), "doc-1").Return(nil, data.ErrDocumentNotFound)
		f.queue.EXPECT().
			Fail(ctx, "task-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msg string) (bool, error) {
				assert.Contains(t, msg, "doc-1")
				return true, nil
			})
		f.fleet.EXPECT().UntrackActive(ctx, "test-worker", "task-1").Return(nil)
		f.queue.EXPECT().Ack(ctx, "test-worker", "task-1").Return(nil)

		f.runner.processTask(ctx, testTaskEnvelope())
		assert.EqualValues(t, 1, f.runner.failed.Load())
	})

	t.Run("unregistered backend records a failure", func(t *testing.T) {
		f := newRunnerFixture(t, func(o *RunnerOptions) {
			o.Parsers = parsers.NewRegistry(parsers.NewMarkitdown())
		})
		env := testTaskEnvelope()
		env.Parser = model.ParserDocling

		f.queue.EXPECT().MarkStarted(ctx, "task-1", "test-worker").Return(true, nil)
		f.fleet.EXPECT().TrackActive(ctx, "test-worker", gomock.Any()).Return(nil)
		f.queue.EXPECT().
			Fail(ctx, "task-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msg string) (bool, error) {
				assert.Contains(t, msg, "docling")
				return true, nil
			})
		f.fleet.EXPECT().UntrackActive(ctx, "test-worker", "task-1").Return(nil)
		f.queue.EXPECT().Ack(ctx, "test-worker", "task-1").Return(nil)

		f.runner.processTask(ctx, env)
		assert.EqualValues(t, 1, f.runner.failed.Load())
	})

	t.Run("parse error surfaces in the failure message", func(t *testing.T) {
		f := newRunnerFixture(t, nil)

		f.queue.EXPECT().MarkStarted(ctx, "task-1", "test-worker").Return(true, nil)
		f.fleet.EXPECT().TrackActive(ctx, "test-worker", gomock.Any()).Return(nil)
		f.documents.EXPECT().GetByID(gomock.Any(), "doc-1").Return(&model.Document{
			ID:          "doc-1",
			Filename:    "scan.pdf",
			ContentType: "application/pdf",
			Content:     []byte{0x25, 0x50},
		}, nil)
		f.queue.EXPECT().
			Fail(ctx, "task-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msg string) (bool, error) {
				assert.Contains(t, msg, "markitdown")
				return true, nil
			})
		f.fleet.EXPECT().UntrackActive(ctx, "test-worker", "task-1").Return(nil)
		f.queue.EXPECT().Ack(ctx, "test-worker", "task-1").Return(nil)

		f.runner.processTask(ctx, testTaskEnvelope())
		assert.EqualValues(t, 1, f.runner.failed.Load())
	})
}

func TestRunner_Run_ShutsDownCleanly(t *testing.T) {
	f := newRunnerFixture(t, func(o *RunnerOptions) {
		o.ClaimTimeout = 10 * time.Millisecond
		o.HeartbeatInterval = 5 * time.Millisecond
		o.PromoteInterval = 5 * time.Millisecond
	})

	f.fleet.EXPECT().Announce(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.queue.EXPECT().
		Claim(gomock.Any(), "test-worker", gomock.Any()).
		Return(nil, model.ErrNoTasksAvailable).
		AnyTimes()
	f.queue.EXPECT().PromoteScheduled(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
	f.fleet.EXPECT().ReclaimOrphaned(gomock.Any()).Return(0, nil).AnyTimes()
	f.fleet.EXPECT().Deregister(gomock.Any(), "test-worker").Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.runner.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not shut down")
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/simbadocs/docparse/internal/data"
	"github.com/simbadocs/docparse/internal/domain/model"
	apperrors "github.com/simbadocs/docparse/internal/errors"
	"github.com/simbadocs/docparse/internal/mocks"
	"github.com/simbadocs/docparse/internal/parsers"
	"github.com/simbadocs/docparse/internal/testutil"
)

type dispatchFixture struct {
	documents *mocks.MockDocumentRepository
	queue     *mocks.MockTaskQueue
	svc       *DispatchService
}

func newDispatchFixture(t *testing.T, mutate func(*DispatchServiceOptions)) *dispatchFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &dispatchFixture{
		documents: mocks.NewMockDocumentRepository(ctrl),
		queue:     mocks.NewMockTaskQueue(ctrl),
	}
	opts := DispatchServiceOptions{
		Documents: f.documents,
		Queue:     f.queue,
		Registry:  parsers.NewDefaultRegistry(),
		Enabled:   true,
		Now:       func() time.Time { return testutil.TestTime() },
		NewID:     func() string { return "task-fixed" },
	}
	if mutate != nil {
		mutate(&opts)
	}
	f.svc = MustNewDispatchService(opts)
	return f
}

func validSubmit() *model.SubmitRequest {
	return &model.SubmitRequest{
		DocumentID: "doc-1",
		Parser:     model.ParserMarkitdown,
	}
}

func TestDispatchService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues exactly once and returns receipt", func(t *testing.T) {
		f := newDispatchFixture(t, nil)
		f.documents.EXPECT().GetByID(ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		f.queue.EXPECT().
			Enqueue(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, env model.TaskEnvelope) error {
				assert.Equal(t, "task-fixed", env.TaskID)
				assert.Equal(t, "doc-1", env.DocumentID)
				assert.Equal(t, model.ParserMarkitdown, env.Parser)
				assert.Equal(t, testutil.TestTime(), env.SubmittedAt)
				return nil
			}).
			Times(1)

		receipt, err := f.svc.Submit(ctx, validSubmit())
		require.NoError(t, err)
		assert.Equal(t, "task-fixed", receipt.TaskID)
		assert.Equal(t, "parsing/tasks/task-fixed", receipt.StatusLocation)
	})

	t.Run("feature flag rejects before any lookup", func(t *testing.T) {
		f := newDispatchFixture(t, func(o *DispatchServiceOptions) { o.Enabled = false })

		_, err := f.svc.Submit(ctx, validSubmit())
		require.Error(t, err)
		assert.True(t, apperrors.IsFeatureDisabled(err))
	})

	t.Run("invalid request shape fails before document lookup", func(t *testing.T) {
		f := newDispatchFixture(t, nil)

		_, err := f.svc.Submit(ctx, &model.SubmitRequest{Parser: model.ParserDocling})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("missing document reports not found", func(t *testing.T) {
		f := newDispatchFixture(t, nil)
		f.documents.EXPECT().GetByID(ctx, "doc-missing").Return(nil, data.ErrDocumentNotFound)

		_, err := f.svc.Submit(ctx, &model.SubmitRequest{
			DocumentID: "doc-missing",
			Parser:     model.ParserMarkitdown,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("missing document wins over unsupported parser", func(t *testing.T) {
		f := newDispatchFixture(t, func(o *DispatchServiceOptions) {
			o.Registry = parsers.NewRegistry(parsers.NewMarkitdown())
		})
		f.documents.EXPECT().GetByID(ctx, "doc-missing").Return(nil, data.ErrDocumentNotFound)

		_, err := f.svc.Submit(ctx, &model.SubmitRequest{
			DocumentID: "doc-missing",
			Parser:     model.ParserDocling,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err), "document check precedes parser check")
		assert.False(t, apperrors.IsUnsupportedParser(err))
	})

	t.Run("unsupported parser with existing document", func(t *testing.T) {
		f := newDispatchFixture(t, func(o *DispatchServiceOptions) {
			o.Registry = parsers.NewRegistry(parsers.NewMarkitdown())
		})
		f.documents.EXPECT().GetByID(ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)

		_, err := f.svc.Submit(ctx, &model.SubmitRequest{
			DocumentID: "doc-1",
			Parser:     model.ParserDocling,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsUnsupportedParser(err))
	})

	t.Run("document lookup failure is internal, not not-found", func(t *testing.T) {
		f := newDispatchFixture(t, nil)
		f.documents.EXPECT().GetByID(ctx, "doc-1").Return(nil, errors.New("connection refused"))

		_, err := f.svc.Submit(ctx, validSubmit())
		require.Error(t, err)
		assert.True(t, apperrors.IsInternal(err))
	})

	t.Run("enqueue failure reports dispatch error", func(t *testing.T) {
		f := newDispatchFixture(t, nil)
		f.documents.EXPECT().GetByID(ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		f.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(errors.New("redis down"))

		_, err := f.svc.Submit(ctx, validSubmit())
		require.Error(t, err)
		assert.True(t, apperrors.IsDispatch(err))
	})

	t.Run("future not-before defers via the scheduled queue", func(t *testing.T) {
		f := newDispatchFixture(t, nil)
		eta := testutil.TestTime().Add(time.Hour)
		f.documents.EXPECT().GetByID(ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		f.queue.EXPECT().EnqueueAt(ctx, gomock.Any(), eta).Return(nil).Times(1)

		req := validSubmit()
		req.NotBefore = &eta
		receipt, err := f.svc.Submit(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "task-fixed", receipt.TaskID)
	})

	t.Run("past not-before enqueues immediately", func(t *testing.T) {
		f := newDispatchFixture(t, nil)
		past := testutil.TestTime().Add(-time.Hour)
		f.documents.EXPECT().GetByID(ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		f.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil).Times(1)

		req := validSubmit()
		req.NotBefore = &past
		_, err := f.svc.Submit(ctx, req)
		require.NoError(t, err)
	})

	t.Run("distinct submissions get distinct task ids", func(t *testing.T) {
		ids := []string{"task-a", "task-b"}
		f := newDispatchFixture(t, func(o *DispatchServiceOptions) {
			o.NewID = func() string {
				id := ids[0]
				ids = ids[1:]
				return id
			}
		})
		f.documents.EXPECT().GetByID(ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil).Times(2)
		f.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(nil).Times(2)

		first, err := f.svc.Submit(ctx, validSubmit())
		require.NoError(t, err)
		second, err := f.svc.Submit(ctx, validSubmit())
		require.NoError(t, err)
		assert.NotEqual(t, first.TaskID, second.TaskID)
	})
}

func TestDispatchService_Capabilities(t *testing.T) {
	f := newDispatchFixture(t, nil)

	caps := f.svc.Capabilities()
	require.Len(t, caps, 2)
	assert.Equal(t, model.ParserMarkitdown, caps[0].Name)
	assert.Equal(t, model.ParserDocling, caps[1].Name)
}

func TestNewDispatchService_RequiresDependencies(t *testing.T) {
	_, err := NewDispatchService(DispatchServiceOptions{})
	require.Error(t, err)

	_, err = NewDispatchService(DispatchServiceOptions{
		Documents: mocks.NewMockDocumentRepository(gomock.NewController(t)),
	})
	require.Error(t, err)
}

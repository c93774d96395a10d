// Package service contains the business logic of the parse dispatch layer:
// submitting tasks, answering status queries and inspecting the worker fleet.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/simbadocs/docparse/internal/core"
	"github.com/simbadocs/docparse/internal/data"
	"github.com/simbadocs/docparse/internal/domain/model"
	apperrors "github.com/simbadocs/docparse/internal/errors"
	"github.com/simbadocs/docparse/internal/parsers"
)

// StatusPathPrefix is the relative location of status queries, returned with
// every dispatch receipt so clients can poll without building URLs themselves.
const StatusPathPrefix = "parsing/tasks/"

// DispatchServiceOptions groups dependencies for DispatchService.
type DispatchServiceOptions struct {
	Documents core.DocumentRepository // Required: document store
	Queue     core.TaskQueue          // Required: work queue
	Registry  *parsers.Registry       // Required: parsing backends
	Enabled   bool                    // Feature flag: reject all submissions when false
	Logger    *slog.Logger            // Optional: structured logger
	Now       func() time.Time        // Optional: clock override for tests
	NewID     func() string           // Optional: task id generator override for tests
}

// DispatchService validates parse submissions and enqueues them exactly once.
//
// Submission checks run in a fixed order so clients see stable error
// precedence: feature flag, then request shape, then document existence, then
// parser capability. A request naming both a missing document and an
// unsupported parser reports the missing document.
type DispatchService struct {
	documents core.DocumentRepository
	queue     core.TaskQueue
	registry  *parsers.Registry
	enabled   bool
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewDispatchService constructs a new DispatchService.
func NewDispatchService(opts DispatchServiceOptions) (*DispatchService, error) {
	if opts.Documents == nil {
		return nil, errors.New("DocumentRepository is required")
	}
	if opts.Queue == nil {
		return nil, errors.New("TaskQueue is required")
	}
	if opts.Registry == nil {
		return nil, errors.New("parser Registry is required")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "dispatch_service")
	}

	return &DispatchService{
		documents: opts.Documents,
		queue:     opts.Queue,
		registry:  opts.Registry,
		enabled:   opts.Enabled,
		logger:    logger,
		now:       now,
		newID:     newID,
	}, nil
}

// MustNewDispatchService constructs a new DispatchService and panics on error.
// Use this when you're certain the options are valid (e.g., in main.go).
func MustNewDispatchService(opts DispatchServiceOptions) *DispatchService {
	svc, err := NewDispatchService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create DispatchService: %v", err))
	}
	return svc
}

// Capabilities lists the registered parsing backends.
func (s *DispatchService) Capabilities() []model.Capability {
	return s.registry.List()
}

// Submit validates the request and enqueues a parse task. On success the
// returned receipt carries the new task id and the relative status location;
// the task is durably queued but has not necessarily started.
func (s *DispatchService) Submit(ctx context.Context, req *model.SubmitRequest) (*model.SubmitReceipt, error) {
	if !s.enabled {
		return nil, apperrors.FeatureDisabled("parser dispatch is disabled")
	}
	if req == nil {
		return nil, apperrors.Validation("submit request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	// Document existence is checked before parser capability: a request that
	// is wrong on both counts reports the missing document.
	if _, err := s.documents.GetByID(ctx, req.DocumentID); err != nil {
		if errors.Is(err, data.ErrDocumentNotFound) {
			return nil, apperrors.NotFoundf("document %s not found", req.DocumentID)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to look up document")
	}

	if !s.registry.Supported(req.Parser) {
		return nil, apperrors.UnsupportedParserf("parser %q is not supported", req.Parser)
	}

	env := model.TaskEnvelope{
		TaskID:      s.newID(),
		DocumentID:  req.DocumentID,
		Parser:      req.Parser,
		SubmittedAt: s.now().UTC(),
	}

	// Exactly one enqueue per accepted request.
	var err error
	if req.NotBefore != nil && req.NotBefore.After(env.SubmittedAt) {
		err = s.queue.EnqueueAt(ctx, env, *req.NotBefore)
	} else {
		err = s.queue.Enqueue(ctx, env)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDispatch, "failed to enqueue parse task")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "parse task dispatched",
			"task_id", env.TaskID,
			"document_id", env.DocumentID,
			"parser", env.Parser,
			"deferred", req.NotBefore != nil)
	}

	return &model.SubmitReceipt{
		TaskID:         env.TaskID,
		StatusLocation: StatusPathPrefix + env.TaskID,
	}, nil
}

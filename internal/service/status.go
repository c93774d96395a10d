package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/simbadocs/docparse/internal/core"
	"github.com/simbadocs/docparse/internal/domain/model"
	apperrors "github.com/simbadocs/docparse/internal/errors"
)

// StatusServiceOptions groups dependencies for StatusService.
type StatusServiceOptions struct {
	Store  core.StatusStore // Required: task status store
	Logger *slog.Logger     // Optional: structured logger
}

// StatusService answers task status queries. Queries never block on task
// execution and never mutate stored state, so reading a terminal task any
// number of times returns the same answer.
type StatusService struct {
	store  core.StatusStore
	logger *slog.Logger
}

// NewStatusService constructs a new StatusService.
func NewStatusService(opts StatusServiceOptions) (*StatusService, error) {
	if opts.Store == nil {
		return nil, errors.New("StatusStore is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "status_service")
	}
	return &StatusService{store: opts.Store, logger: logger}, nil
}

// MustNewStatusService constructs a new StatusService and panics on error.
func MustNewStatusService(opts StatusServiceOptions) *StatusService {
	svc, err := NewStatusService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create StatusService: %v", err))
	}
	return svc
}

// StatusQuery carries the parameters of one status lookup.
type StatusQuery struct {
	TaskID string
	// Select, when non-empty, is a JMESPath expression applied to a SUCCESS
	// result before it is returned. Other states ignore it.
	Select string
}

// GetStatus returns the current status of a task. Unrecognized identifiers
// report state UNKNOWN rather than an error; expired results are
// indistinguishable from identifiers that were never issued.
func (s *StatusService) GetStatus(ctx context.Context, q StatusQuery) (*model.TaskStatus, error) {
	if q.TaskID == "" {
		return nil, apperrors.ValidationField("task_id", "task id is required")
	}

	// Validate the projection before touching the store so a bad expression
	// fails the same way for every task state.
	if q.Select != "" {
		if _, err := jmespath.Compile(q.Select); err != nil {
			return nil, apperrors.ValidationField("select",
				fmt.Sprintf("invalid select expression: %v", err))
		}
	}

	status, err := s.store.Get(ctx, q.TaskID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to read task status")
	}

	if q.Select != "" && status.State == model.TaskStateSuccess && len(status.Result) > 0 {
		projected, perr := projectResult(q.Select, status.Result)
		if perr != nil {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "select projection failed, returning full result",
					"task_id", q.TaskID, "error", perr)
			}
		} else {
			status.Result = projected
		}
	}

	return status, nil
}

// projectResult applies a JMESPath expression to a stored result.
func projectResult(expr string, result json.RawMessage) (json.RawMessage, error) {
	var data any
	if err := json.Unmarshal(result, &data); err != nil {
		return nil, fmt.Errorf("decode stored result: %w", err)
	}
	out, err := jmespath.Search(expr, data)
	if err != nil {
		return nil, fmt.Errorf("evaluate select expression: %w", err)
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode projected result: %w", err)
	}
	return raw, nil
}

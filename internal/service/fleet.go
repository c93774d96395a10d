package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simbadocs/docparse/internal/core"
	"github.com/simbadocs/docparse/internal/domain/model"
	apperrors "github.com/simbadocs/docparse/internal/errors"
)

// defaultSnapshotTimeout bounds a whole fleet snapshot; a wedged category
// read should degrade the snapshot, not hang the caller.
const defaultSnapshotTimeout = 5 * time.Second

// FleetServiceOptions groups dependencies for FleetService.
type FleetServiceOptions struct {
	Source  core.FleetSource // Required: fleet state reads
	Logger  *slog.Logger     // Optional: structured logger
	Timeout time.Duration    // Optional: per-snapshot deadline override
}

// FleetService assembles point-in-time snapshots of queue and worker state.
//
// The five categories are read independently and individual failures are
// absorbed: a category whose read fails comes back empty, and missing
// statistics leave the Stats field unset rather than failing the snapshot.
// Inspection must keep working while the fleet is degraded. Only when every
// category fails does Snapshot return an error, since at that point there is
// no fleet state left to report.
type FleetService struct {
	source  core.FleetSource
	logger  *slog.Logger
	timeout time.Duration
}

// NewFleetService constructs a new FleetService.
func NewFleetService(opts FleetServiceOptions) (*FleetService, error) {
	if opts.Source == nil {
		return nil, errors.New("FleetSource is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultSnapshotTimeout
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "fleet_service")
	}
	return &FleetService{source: opts.Source, logger: logger, timeout: timeout}, nil
}

// MustNewFleetService constructs a new FleetService and panics on error.
func MustNewFleetService(opts FleetServiceOptions) *FleetService {
	svc, err := NewFleetService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create FleetService: %v", err))
	}
	return svc
}

// Snapshot collects the current fleet view. Every category is queried
// concurrently and the snapshot contains whatever subset could be read; an
// error is returned only when no category could be read at all, so a fully
// unreachable store is not mistaken for an idle fleet.
func (s *FleetService) Snapshot(ctx context.Context) (*model.FleetSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	snap := &model.FleetSnapshot{
		Active:     map[string][]model.TaskRef{},
		Reserved:   map[string][]model.TaskRef{},
		Scheduled:  []model.ScheduledTask{},
		Registered: map[string][]model.ParserName{},
	}

	// Each goroutine writes its own error slot, so Wait orders the writes
	// and no locking is needed.
	var activeErr, reservedErr, scheduledErr, registeredErr, statsErr error

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		active, err := s.source.ActiveTasks(gctx)
		if err != nil {
			activeErr = s.absorb(gctx, "active", err)
			return nil
		}
		snap.Active = active
		return nil
	})
	g.Go(func() error {
		reserved, err := s.source.ReservedTasks(gctx)
		if err != nil {
			reservedErr = s.absorb(gctx, "reserved", err)
			return nil
		}
		snap.Reserved = reserved
		return nil
	})
	g.Go(func() error {
		scheduled, err := s.source.ScheduledTasks(gctx)
		if err != nil {
			scheduledErr = s.absorb(gctx, "scheduled", err)
			return nil
		}
		snap.Scheduled = scheduled
		return nil
	})
	g.Go(func() error {
		registered, err := s.source.RegisteredCapabilities(gctx)
		if err != nil {
			registeredErr = s.absorb(gctx, "registered", err)
			return nil
		}
		snap.Registered = registered
		return nil
	})
	g.Go(func() error {
		stats, err := s.source.WorkerStats(gctx)
		if err != nil {
			// Statistics are best-effort: absence of the field tells the
			// caller the sub-query did not complete.
			statsErr = s.absorb(gctx, "stats", err)
			return nil
		}
		snap.Stats = stats
		return nil
	})

	_ = g.Wait()

	if activeErr != nil && reservedErr != nil && scheduledErr != nil &&
		registeredErr != nil && statsErr != nil {
		return nil, apperrors.Wrap(
			errors.Join(activeErr, reservedErr, scheduledErr, registeredErr, statsErr),
			apperrors.ErrCodeInternal, "fleet inspection unavailable")
	}

	return snap, nil
}

func (s *FleetService) absorb(ctx context.Context, category string, err error) error {
	if s.logger != nil {
		s.logger.WarnContext(ctx, "fleet snapshot category unavailable",
			"category", category, "error", err)
	}
	return fmt.Errorf("%s: %w", category, err)
}

// Package parseworker pulls parse tasks off the work queue and executes them
// against the registered parsing backends.
package parseworker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simbadocs/docparse/internal/core"
	"github.com/simbadocs/docparse/internal/data"
	"github.com/simbadocs/docparse/internal/domain/model"
	"github.com/simbadocs/docparse/internal/observability/metrics"
	"github.com/simbadocs/docparse/internal/observability/statsd"
	"github.com/simbadocs/docparse/internal/parsers"
)

const (
	defaultClaimTimeout      = 5 * time.Second
	defaultParseTimeout      = 2 * time.Minute
	defaultHeartbeatInterval = 10 * time.Second
	defaultPromoteInterval   = time.Second
)

// RunnerOptions configures the parse worker adapter.
type RunnerOptions struct {
	Queue     core.WorkerQueue        // Required: claim and transition tasks
	Fleet     core.WorkerRegistry     // Required: heartbeats and active-task tracking
	Documents core.DocumentRepository // Required: document bodies for parsing
	Parsers   *parsers.Registry       // Optional: defaults to the standard backends
	Logger    *slog.Logger
	Metrics   statsd.Sink

	// Worker identity and sizing
	Name        string // defaults to <hostname>-<pid>
	Concurrency int    // number of executor goroutines; defaults to 1

	// Timing knobs; zero values take the package defaults.
	ClaimTimeout      time.Duration
	ParseTimeout      time.Duration
	HeartbeatInterval time.Duration
	HeartbeatTTL      time.Duration
	PromoteInterval   time.Duration
}

// Runner claims tasks, drives their state transitions and reports fleet
// liveness. One Runner is one named worker: its heartbeat, reserved list and
// active hash all hang off the worker name.
type Runner struct {
	queue     core.WorkerQueue
	fleet     core.WorkerRegistry
	documents core.DocumentRepository
	registry  *parsers.Registry
	logger    *slog.Logger
	metrics   statsd.Sink

	name        string
	concurrency int

	claimTimeout      time.Duration
	parseTimeout      time.Duration
	heartbeatInterval time.Duration
	heartbeatTTL      time.Duration
	promoteInterval   time.Duration

	processed atomic.Int64
	failed    atomic.Int64
	startedAt time.Time
}

// NewRunner constructs a parse worker.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Queue == nil {
		return nil, errors.New("WorkerQueue is required")
	}
	if opts.Fleet == nil {
		return nil, errors.New("WorkerRegistry is required")
	}
	if opts.Documents == nil {
		return nil, errors.New("DocumentRepository is required")
	}

	registry := opts.Parsers
	if registry == nil {
		registry = parsers.NewDefaultRegistry()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := opts.Name
	if name == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "worker"
		}
		name = host + "-" + strconv.Itoa(os.Getpid())
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	r := &Runner{
		queue:             opts.Queue,
		fleet:             opts.Fleet,
		documents:         opts.Documents,
		registry:          registry,
		logger:            logger.With("component", "parse_worker", "worker", name),
		metrics:           opts.Metrics,
		name:              name,
		concurrency:       concurrency,
		claimTimeout:      durationOr(opts.ClaimTimeout, defaultClaimTimeout),
		parseTimeout:      durationOr(opts.ParseTimeout, defaultParseTimeout),
		heartbeatInterval: durationOr(opts.HeartbeatInterval, defaultHeartbeatInterval),
		heartbeatTTL:      durationOr(opts.HeartbeatTTL, data.DefaultHeartbeatTTL),
		promoteInterval:   durationOr(opts.PromoteInterval, defaultPromoteInterval),
	}
	return r, nil
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}

// Name returns the worker's fleet-visible name.
func (r *Runner) Name() string { return r.name }

// Run announces the worker, starts the executor pool plus the heartbeat and
// promotion loops, and blocks until the context is cancelled. On the way out
// the worker deregisters so its reserved tasks go back to the queue.
func (r *Runner) Run(ctx context.Context) error {
	r.startedAt = time.Now()
	r.logger.InfoContext(ctx, "starting parse worker",
		"concurrency", r.concurrency, "parsers", len(r.registry.List()))

	if err := r.announce(ctx); err != nil {
		return fmt.Errorf("initial heartbeat: %w", err)
	}
	defer func() {
		// Deregistration runs on a fresh context: the run context is
		// already cancelled during shutdown.
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.fleet.Deregister(cleanupCtx, r.name); err != nil {
			r.logger.Error("worker deregistration failed", "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.heartbeatLoop(gctx) })
	g.Go(func() error { return r.promoteLoop(gctx) })
	for range r.concurrency {
		g.Go(func() error { return r.executorLoop(gctx) })
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (r *Runner) executorLoop(ctx context.Context) error {
	for ctx.Err() == nil {
		env, err := r.queue.Claim(ctx, r.name, r.claimTimeout)
		switch {
		case err == nil:
			r.processTask(ctx, env)
		case errors.Is(err, model.ErrNoTasksAvailable):
			// claim timed out with an empty queue; loop and block again
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			return fmt.Errorf("claim task: %w", err)
		}
	}
	return ctx.Err()
}

func (r *Runner) processTask(ctx context.Context, env *model.TaskEnvelope) {
	start := time.Now()
	emit := func(transition, result string, err error) {
		metrics.EmitTaskLifecycle(r.metrics, metrics.TaskMetric{
			Parser:     string(env.Parser),
			Transition: transition,
			Result:     result,
			Duration:   time.Since(start),
			Err:        err,
		})
	}

	defer func() {
		if err := r.queue.Ack(ctx, r.name, env.TaskID); err != nil {
			r.logger.ErrorContext(ctx, "ack failed", "task_id", env.TaskID, "error", err)
		}
	}()

	started, err := r.queue.MarkStarted(ctx, env.TaskID, r.name)
	if err != nil {
		r.logger.ErrorContext(ctx, "start transition failed", "task_id", env.TaskID, "error", err)
		emit("started", metrics.ResultError, err)
		return
	}
	if !started {
		// Someone already moved this task past PENDING (a requeued duplicate
		// or an expired record). Nothing to execute.
		r.logger.WarnContext(ctx, "claimed task was not pending, skipping", "task_id", env.TaskID)
		emit("started", metrics.ResultNoop, nil)
		return
	}

	ref := model.TaskRef{TaskID: env.TaskID, DocumentID: env.DocumentID, Parser: env.Parser}
	if terr := r.fleet.TrackActive(ctx, r.name, ref); terr != nil {
		r.logger.WarnContext(ctx, "active tracking failed", "task_id", env.TaskID, "error", terr)
	}
	defer func() {
		if uerr := r.fleet.UntrackActive(ctx, r.name, env.TaskID); uerr != nil {
			r.logger.WarnContext(ctx, "active untracking failed", "task_id", env.TaskID, "error", uerr)
		}
	}()

	result, parseErr := r.execute(ctx, env)
	if parseErr != nil {
		r.failed.Add(1)
		if _, ferr := r.queue.Fail(ctx, env.TaskID, parseErr.Error()); ferr != nil {
			r.logger.ErrorContext(ctx, "failure transition failed", "task_id", env.TaskID, "error", ferr)
		}
		r.logger.WarnContext(ctx, "parse task failed",
			"task_id", env.TaskID, "parser", env.Parser, "error", parseErr)
		emit("completed", metrics.ResultError, parseErr)
		return
	}

	r.processed.Add(1)
	won, cerr := r.queue.Complete(ctx, env.TaskID, result)
	if cerr != nil {
		r.logger.ErrorContext(ctx, "success transition failed", "task_id", env.TaskID, "error", cerr)
		emit("completed", metrics.ResultError, cerr)
		return
	}
	if !won {
		emit("completed", metrics.ResultNoop, nil)
		return
	}

	r.logger.InfoContext(ctx, "parse task completed",
		"task_id", env.TaskID, "parser", env.Parser, "duration", time.Since(start))
	emit("completed", metrics.ResultSuccess, nil)
}

// execute loads the document and runs the named backend under the parse deadline.
func (r *Runner) execute(ctx context.Context, env *model.TaskEnvelope) ([]byte, error) {
	backend, ok := r.registry.Get(env.Parser)
	if !ok {
		return nil, fmt.Errorf("parser %q is not registered on this worker", env.Parser)
	}

	doc, err := r.documents.GetByID(ctx, env.DocumentID)
	if err != nil {
		if errors.Is(err, data.ErrDocumentNotFound) {
			return nil, fmt.Errorf("document %s no longer exists", env.DocumentID)
		}
		return nil, fmt.Errorf("load document %s: %w", env.DocumentID, err)
	}

	parseCtx, cancel := context.WithTimeout(ctx, r.parseTimeout)
	defer cancel()

	result, err := backend.Parse(parseCtx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", env.Parser, err)
	}
	return result, nil
}

func (r *Runner) heartbeatLoop(ctx context.Context) error {
	ticker := time.NewTicker(r.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.announce(ctx); err != nil {
				r.logger.WarnContext(ctx, "heartbeat failed", "error", err)
			}
		}
	}
}

func (r *Runner) announce(ctx context.Context) error {
	caps := r.registry.List()
	registered := make([]model.ParserName, len(caps))
	for i, c := range caps {
		registered[i] = c.Name
	}

	return r.fleet.Announce(ctx, core.Heartbeat{
		Worker:     r.name,
		Registered: registered,
		Stats: model.WorkerStats{
			Processed:   r.processed.Load(),
			Failed:      r.failed.Load(),
			Concurrency: r.concurrency,
			StartedAt:   r.startedAt,
		},
		TTL: r.heartbeatTTL,
	})
}

// promoteLoop runs the periodic queue maintenance every worker shares:
// promoting due scheduled tasks and reclaiming reserved tasks stranded by
// workers that died without deregistering.
func (r *Runner) promoteLoop(ctx context.Context) error {
	ticker := time.NewTicker(r.promoteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.queue.PromoteScheduled(ctx, time.Now()); err != nil {
				r.logger.WarnContext(ctx, "scheduled promotion failed", "error", err)
			}
			if _, err := r.fleet.ReclaimOrphaned(ctx); err != nil {
				r.logger.WarnContext(ctx, "orphan reclaim failed", "error", err)
			}
		}
	}
}

// Package core contains the port interfaces of the dispatch layer
// (hexagonal architecture). Services depend on these interfaces; the
// data package supplies the Postgres and Redis implementations.
package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/simbadocs/docparse/internal/domain/model"
)

// DocumentRepository reads and writes stored documents. The dispatcher only
// calls GetByID to verify existence; Create exists for seeding and tests.
type DocumentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Document, error)
	Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error)
}

// TaskQueue is the dispatcher's write side of the work queue. Enqueue pushes
// the envelope and records the initial PENDING status in one atomic step, so
// a task is never visible to workers without a status record (and vice versa).
type TaskQueue interface {
	// Enqueue makes the task immediately claimable.
	Enqueue(ctx context.Context, env model.TaskEnvelope) error
	// EnqueueAt defers the task until eta; a promoter moves due tasks onto
	// the ready queue.
	EnqueueAt(ctx context.Context, env model.TaskEnvelope, eta time.Time) error
}

// StatusStore is the read side of task state. Get never fails on a missing
// identifier; it reports state UNKNOWN instead.
type StatusStore interface {
	Get(ctx context.Context, taskID string) (*model.TaskStatus, error)
}

// WorkerQueue is the worker's view of the queue: claiming work and driving
// task state transitions. The transition methods report whether the write
// took effect; a false return means another writer got there first and the
// caller must treat the stored state as authoritative.
type WorkerQueue interface {
	// Claim blocks up to the given duration for the next ready task, moving
	// it onto the worker's reserved list. Returns model.ErrNoTasksAvailable
	// on timeout.
	Claim(ctx context.Context, worker string, block time.Duration) (*model.TaskEnvelope, error)
	// Ack removes a finished task from the worker's reserved list.
	Ack(ctx context.Context, worker, taskID string) error
	// MarkStarted transitions PENDING to STARTED for the named worker.
	MarkStarted(ctx context.Context, taskID, worker string) (bool, error)
	// Complete records a terminal SUCCESS with the parse result.
	Complete(ctx context.Context, taskID string, result json.RawMessage) (bool, error)
	// Fail records a terminal FAILURE with a diagnostic message.
	Fail(ctx context.Context, taskID, errMsg string) (bool, error)
	// PromoteScheduled moves tasks whose ETA has passed onto the ready queue
	// and returns how many were promoted.
	PromoteScheduled(ctx context.Context, now time.Time) (int, error)
}

// Heartbeat is the liveness record a worker publishes on an interval.
type Heartbeat struct {
	Worker     string
	Registered []model.ParserName
	Stats      model.WorkerStats
	TTL        time.Duration
}

// WorkerRegistry tracks live workers for the fleet inspector.
type WorkerRegistry interface {
	Announce(ctx context.Context, hb Heartbeat) error
	Deregister(ctx context.Context, worker string) error
	// TrackActive marks a task as executing on the worker; untracked on
	// completion.
	TrackActive(ctx context.Context, worker string, ref model.TaskRef) error
	UntrackActive(ctx context.Context, worker, taskID string) error
	// ReclaimOrphaned re-queues reserved tasks of workers whose heartbeat
	// expired without a clean deregister. Returns how many were re-queued.
	ReclaimOrphaned(ctx context.Context) (int, error)
}

// FleetSource exposes the per-category reads behind a fleet snapshot. Each
// method is queried independently so one failing category does not take the
// others down with it.
type FleetSource interface {
	ActiveTasks(ctx context.Context) (map[string][]model.TaskRef, error)
	ReservedTasks(ctx context.Context) (map[string][]model.TaskRef, error)
	ScheduledTasks(ctx context.Context) ([]model.ScheduledTask, error)
	RegisteredCapabilities(ctx context.Context) (map[string][]model.ParserName, error)
	WorkerStats(ctx context.Context) (map[string]model.WorkerStats, error)
}

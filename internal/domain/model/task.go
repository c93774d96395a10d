// Package model defines the core data types used throughout the docparse
// job-orchestration system.
package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// TaskState represents the lifecycle state of a parse task.
//
// States form a strict lifecycle:
//
//	PENDING --(worker claims)--> STARTED --(success)--> SUCCESS   [terminal]
//	                                    \--(failure)--> FAILURE   [terminal]
//
// UNKNOWN is the state reported for identifiers the status store has no record
// of; callers cannot distinguish a never-issued identifier from an expired one.
type TaskState string

const (
	// TaskStatePending indicates a task is enqueued but not yet claimed by a worker.
	TaskStatePending TaskState = "PENDING"
	// TaskStateStarted indicates a worker has claimed the task and is executing it.
	TaskStateStarted TaskState = "STARTED"
	// TaskStateSuccess indicates the task finished successfully (terminal).
	TaskStateSuccess TaskState = "SUCCESS"
	// TaskStateFailure indicates the task failed (terminal).
	TaskStateFailure TaskState = "FAILURE"
	// TaskStateUnknown indicates the status store has no record of the identifier.
	TaskStateUnknown TaskState = "UNKNOWN"
)

// Valid returns true if the TaskState is one of the store-recorded states.
// UNKNOWN is a query-surface state only and is never written.
func (s TaskState) Valid() bool {
	return s == TaskStatePending || s == TaskStateStarted ||
		s == TaskStateSuccess || s == TaskStateFailure
}

// Terminal returns true if the state admits no further transitions.
func (s TaskState) Terminal() bool {
	return s == TaskStateSuccess || s == TaskStateFailure
}

// ErrNoTasksAvailable is returned when no tasks are available for claiming.
var ErrNoTasksAvailable = errors.New("no tasks available")

// ParseTask represents one unit of dispatched parsing work. It is created by
// the dispatcher at enqueue time and mutated only by workers as it transitions
// state.
type ParseTask struct {
	ID          string          `json:"id"`
	DocumentID  string          `json:"document_id"`
	Parser      ParserName      `json:"parser"`
	State       TaskState       `json:"state"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *string         `json:"error,omitempty"`
	Worker      string          `json:"worker,omitempty"`
	SubmittedAt time.Time       `json:"submitted_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// TaskEnvelope is the wire form pushed onto the work queue. It carries only
// the references a worker needs; the document body stays in the document store.
type TaskEnvelope struct {
	TaskID      string     `json:"task_id"`
	DocumentID  string     `json:"document_id"`
	Parser      ParserName `json:"parser"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

// SubmitRequest represents a request to dispatch a parse task.
type SubmitRequest struct {
	DocumentID string     `json:"document_id"`
	Parser     ParserName `json:"parser"`
	// NotBefore, when set to a future instant, defers execution: the task is
	// placed in the scheduled set and promoted onto the ready queue when due.
	NotBefore *time.Time `json:"not_before,omitempty"`
}

// Validate validates the SubmitRequest fields.
func (r *SubmitRequest) Validate() error {
	if strings.TrimSpace(r.DocumentID) == "" {
		return errors.New("document id is required")
	}
	if r.Parser == "" {
		return errors.New("parser is required")
	}
	return nil
}

// SubmitReceipt is returned by a successful dispatch. The task is durably
// enqueued but execution has not necessarily begun.
type SubmitReceipt struct {
	TaskID         string `json:"task_id"`
	StatusLocation string `json:"status_url"`
}

// TaskStatus is the non-blocking, idempotent view of a task returned to
// status queries. Result is populated only for SUCCESS, Error only for FAILURE.
type TaskStatus struct {
	TaskID      string          `json:"task_id"`
	State       TaskState       `json:"status"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *string         `json:"error,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

package model

import "time"

// TaskRef is a lightweight reference to an in-flight or queued task, as seen
// by the fleet inspector. It deliberately omits results and document content.
type TaskRef struct {
	TaskID     string     `json:"task_id"`
	DocumentID string     `json:"document_id"`
	Parser     ParserName `json:"parser"`
}

// ScheduledTask is a task deferred for future execution.
type ScheduledTask struct {
	TaskRef
	ETA time.Time `json:"eta"`
}

// WorkerStats is the aggregate statistics block a worker publishes with its
// heartbeat.
type WorkerStats struct {
	Processed   int64     `json:"processed"`
	Failed      int64     `json:"failed"`
	Concurrency int       `json:"concurrency"`
	StartedAt   time.Time `json:"started_at"`
}

// FleetSnapshot is a point-in-time view of queue and worker state. Each
// collection is populated independently; a sub-query failure leaves its field
// empty rather than failing the whole snapshot. Stats is optional by contract:
// absence means the statistics sub-query did not complete, not that the fleet
// is idle.
type FleetSnapshot struct {
	Active     map[string][]TaskRef    `json:"active"`
	Reserved   map[string][]TaskRef    `json:"reserved"`
	Scheduled  []ScheduledTask         `json:"scheduled"`
	Registered map[string][]ParserName `json:"registered"`
	Stats      map[string]WorkerStats  `json:"stats,omitempty"`
}

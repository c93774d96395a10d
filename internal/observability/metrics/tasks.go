// Package metrics emits lifecycle metrics for parse tasks.
package metrics

import (
	"time"

	obserrors "github.com/simbadocs/docparse/internal/observability/errors"
	"github.com/simbadocs/docparse/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// TaskMetric captures details about a task lifecycle event for metric emission.
type TaskMetric struct {
	Parser     string
	Transition string
	Result     string
	Duration   time.Duration
	Err        error
}

// EmitTaskLifecycle emits standardised task lifecycle metrics.
func EmitTaskLifecycle(sink statsd.Sink, in TaskMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"parser":     in.Parser,
		"transition": in.Transition,
		"result":     in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("task.transition", 1, tags)

	if in.Duration > 0 {
		sink.Timing("task.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

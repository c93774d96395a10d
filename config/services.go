package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeWorker runs the parse worker pool.
	ServiceModeWorker ServiceMode = "worker"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeHTTP, ServiceModeWorker}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeWorker:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http, worker)", serviceName)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// WorkerConfig contains parse worker service configuration.
type WorkerConfig struct {
	// Name identifies this worker in the fleet. Defaults to <hostname>-<pid>
	// when empty.
	Name string `env:"NAME" envDefault:""`

	// Concurrency is the number of executor goroutines.
	Concurrency int `env:"CONCURRENCY" envDefault:"4"`

	// ClaimTimeout is how long a claim blocks waiting for work before retrying.
	ClaimTimeout time.Duration `env:"CLAIM_TIMEOUT" envDefault:"5s"`

	// ParseTimeout bounds a single backend execution.
	ParseTimeout time.Duration `env:"PARSE_TIMEOUT" envDefault:"2m"`

	// HeartbeatInterval is how often the worker refreshes its fleet record.
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"10s"`

	// HeartbeatTTL is how long a fleet record survives without a refresh.
	// Must exceed HeartbeatInterval or the worker flickers out of the fleet.
	HeartbeatTTL time.Duration `env:"HEARTBEAT_TTL" envDefault:"30s"`

	// PromoteInterval is how often due scheduled tasks are moved to the ready queue.
	PromoteInterval time.Duration `env:"PROMOTE_INTERVAL" envDefault:"1s"`

	// ResultTTL is how long task status records (including results) are retained.
	ResultTTL time.Duration `env:"RESULT_TTL" envDefault:"24h"`
}

// Sanitize applies guardrails to worker configuration values.
func (w *WorkerConfig) Sanitize() {
	if w.Concurrency < 1 {
		w.Concurrency = 1
	}
	if w.ClaimTimeout < time.Second {
		w.ClaimTimeout = time.Second
	}
	if w.ParseTimeout < time.Second {
		w.ParseTimeout = time.Second
	}
	if w.HeartbeatInterval < time.Second {
		w.HeartbeatInterval = time.Second
	}
	if w.HeartbeatTTL <= w.HeartbeatInterval {
		w.HeartbeatTTL = 3 * w.HeartbeatInterval
	}
	if w.PromoteInterval < 100*time.Millisecond {
		w.PromoteInterval = 100 * time.Millisecond
	}
	if w.ResultTTL < time.Minute {
		w.ResultTTL = time.Minute
	}
}

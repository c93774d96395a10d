package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simbadocs/docparse/internal/core"
	"github.com/simbadocs/docparse/internal/domain/model"
)

// DefaultHeartbeatTTL is how long a worker stays visible to the fleet
// inspector after its last heartbeat.
const DefaultHeartbeatTTL = 30 * time.Second

// requeueReservedScript drains a worker's reserved list back onto the ready
// queue so claimed-but-unfinished tasks survive the worker going away.
var requeueReservedScript = redis.NewScript(`
local moved = 0
while true do
	local v = redis.call('LMOVE', KEYS[1], KEYS[2], 'RIGHT', 'LEFT')
	if not v then
		break
	end
	moved = moved + 1
end
return moved
`)

// FleetRepo provides Redis operations behind the worker registry and the
// fleet inspector.
type FleetRepo struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewFleetRepo creates a new FleetRepo with the given Redis client.
func NewFleetRepo(client redis.UniversalClient, logger *slog.Logger) *FleetRepo {
	return &FleetRepo{client: client, logger: logger}
}

// Announce records a worker heartbeat: membership in the worker set plus a
// per-worker hash that expires when heartbeats stop.
func (r *FleetRepo) Announce(ctx context.Context, hb core.Heartbeat) error {
	if hb.Worker == "" {
		return ErrWorkerRequired
	}

	registered, err := json.Marshal(hb.Registered)
	if err != nil {
		return fmt.Errorf("marshal registered parsers: %w", err)
	}
	stats, err := json.Marshal(hb.Stats)
	if err != nil {
		return fmt.Errorf("marshal worker stats: %w", err)
	}

	ttl := hb.TTL
	if ttl <= 0 {
		ttl = DefaultHeartbeatTTL
	}

	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, keyWorkers, hb.Worker)
	pipe.HSet(ctx, keyWorker(hb.Worker),
		"registered", registered,
		"stats", stats,
		"heartbeat_at", time.Now().UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, keyWorker(hb.Worker), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("announce worker %s: %w", hb.Worker, err)
	}
	return nil
}

// Deregister removes a worker from the fleet, re-queuing anything it still
// had reserved so no claimed task is stranded.
func (r *FleetRepo) Deregister(ctx context.Context, worker string) error {
	if worker == "" {
		return ErrWorkerRequired
	}

	moved, err := requeueReservedScript.Run(ctx, r.client,
		[]string{keyWorkerReserved(worker), keyQueue}).Int()
	if err != nil {
		return fmt.Errorf("requeue reserved tasks for worker %s: %w", worker, err)
	}
	if moved > 0 && r.logger != nil {
		r.logger.InfoContext(ctx, "re-queued reserved tasks on deregister",
			"worker", worker, "count", moved)
	}

	pipe := r.client.TxPipeline()
	pipe.SRem(ctx, keyWorkers, worker)
	pipe.Del(ctx, keyWorker(worker), keyWorkerActive(worker))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deregister worker %s: %w", worker, err)
	}
	return nil
}

// ReclaimOrphaned re-queues reserved tasks belonging to workers whose
// heartbeat has expired, then drops the dead workers from the membership set.
// Returns how many tasks were put back on the ready queue.
func (r *FleetRepo) ReclaimOrphaned(ctx context.Context) (int, error) {
	names, err := r.client.SMembers(ctx, keyWorkers).Result()
	if err != nil {
		return 0, fmt.Errorf("list workers: %w", err)
	}

	reclaimed := 0
	for _, name := range names {
		exists, err := r.client.Exists(ctx, keyWorker(name)).Result()
		if err != nil {
			return reclaimed, fmt.Errorf("check worker %s: %w", name, err)
		}
		if exists > 0 {
			continue
		}

		moved, err := requeueReservedScript.Run(ctx, r.client,
			[]string{keyWorkerReserved(name), keyQueue}).Int()
		if err != nil {
			return reclaimed, fmt.Errorf("requeue reserved tasks for worker %s: %w", name, err)
		}
		reclaimed += moved

		pipe := r.client.TxPipeline()
		pipe.SRem(ctx, keyWorkers, name)
		pipe.Del(ctx, keyWorkerActive(name))
		if _, err := pipe.Exec(ctx); err != nil {
			return reclaimed, fmt.Errorf("remove dead worker %s: %w", name, err)
		}

		if r.logger != nil {
			r.logger.InfoContext(ctx, "reclaimed tasks from dead worker",
				"worker", name, "count", moved)
		}
	}
	return reclaimed, nil
}

// TrackActive marks a task as executing on the worker.
func (r *FleetRepo) TrackActive(ctx context.Context, worker string, ref model.TaskRef) error {
	if worker == "" {
		return ErrWorkerRequired
	}

	payload, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("marshal task ref: %w", err)
	}
	if err := r.client.HSet(ctx, keyWorkerActive(worker), ref.TaskID, payload).Err(); err != nil {
		return fmt.Errorf("track active task %s: %w", ref.TaskID, err)
	}
	return nil
}

// UntrackActive removes a task from the worker's executing set.
func (r *FleetRepo) UntrackActive(ctx context.Context, worker, taskID string) error {
	if worker == "" {
		return ErrWorkerRequired
	}
	if err := r.client.HDel(ctx, keyWorkerActive(worker), taskID).Err(); err != nil {
		return fmt.Errorf("untrack active task %s: %w", taskID, err)
	}
	return nil
}

// liveWorkers returns worker names whose heartbeat hash still exists. Names
// with an expired heartbeat are lazily pruned from the membership set.
func (r *FleetRepo) liveWorkers(ctx context.Context) ([]string, error) {
	names, err := r.client.SMembers(ctx, keyWorkers).Result()
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	live := make([]string, 0, len(names))
	for _, name := range names {
		exists, err := r.client.Exists(ctx, keyWorker(name)).Result()
		if err != nil {
			return nil, fmt.Errorf("check worker %s: %w", name, err)
		}
		if exists == 0 {
			r.client.SRem(ctx, keyWorkers, name)
			continue
		}
		live = append(live, name)
	}
	return live, nil
}

// ActiveTasks returns the tasks currently executing, keyed by worker name.
func (r *FleetRepo) ActiveTasks(ctx context.Context) (map[string][]model.TaskRef, error) {
	workers, err := r.liveWorkers(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]model.TaskRef, len(workers))
	for _, name := range workers {
		vals, err := r.client.HVals(ctx, keyWorkerActive(name)).Result()
		if err != nil {
			return nil, fmt.Errorf("read active tasks for worker %s: %w", name, err)
		}
		out[name] = decodeTaskRefs(vals)
	}
	return out, nil
}

// ReservedTasks returns claimed-but-not-yet-executing tasks, keyed by worker name.
func (r *FleetRepo) ReservedTasks(ctx context.Context) (map[string][]model.TaskRef, error) {
	workers, err := r.liveWorkers(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]model.TaskRef, len(workers))
	for _, name := range workers {
		raws, err := r.client.LRange(ctx, keyWorkerReserved(name), 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("read reserved tasks for worker %s: %w", name, err)
		}
		refs := make([]model.TaskRef, 0, len(raws))
		for _, raw := range raws {
			var env model.TaskEnvelope
			if uerr := json.Unmarshal([]byte(raw), &env); uerr != nil {
				continue
			}
			refs = append(refs, model.TaskRef{
				TaskID:     env.TaskID,
				DocumentID: env.DocumentID,
				Parser:     env.Parser,
			})
		}
		out[name] = refs
	}
	return out, nil
}

// ScheduledTasks returns deferred tasks ordered by ETA.
func (r *FleetRepo) ScheduledTasks(ctx context.Context) ([]model.ScheduledTask, error) {
	entries, err := r.client.ZRangeByScoreWithScores(ctx, keyScheduled, &redis.ZRangeBy{
		Min: "-inf",
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("read scheduled tasks: %w", err)
	}

	out := make([]model.ScheduledTask, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.Member.(string)
		if !ok {
			continue
		}
		var env model.TaskEnvelope
		if uerr := json.Unmarshal([]byte(raw), &env); uerr != nil {
			continue
		}
		out = append(out, model.ScheduledTask{
			TaskRef: model.TaskRef{
				TaskID:     env.TaskID,
				DocumentID: env.DocumentID,
				Parser:     env.Parser,
			},
			ETA: time.UnixMilli(int64(entry.Score * 1000)).UTC(),
		})
	}
	return out, nil
}

// RegisteredCapabilities returns the parsers each live worker advertises.
func (r *FleetRepo) RegisteredCapabilities(ctx context.Context) (map[string][]model.ParserName, error) {
	workers, err := r.liveWorkers(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]model.ParserName, len(workers))
	for _, name := range workers {
		raw, err := r.client.HGet(ctx, keyWorker(name), "registered").Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				out[name] = nil
				continue
			}
			return nil, fmt.Errorf("read registered parsers for worker %s: %w", name, err)
		}
		var parsers []model.ParserName
		if uerr := json.Unmarshal([]byte(raw), &parsers); uerr != nil {
			continue
		}
		out[name] = parsers
	}
	return out, nil
}

// WorkerStats returns the per-worker statistics block published with heartbeats.
func (r *FleetRepo) WorkerStats(ctx context.Context) (map[string]model.WorkerStats, error) {
	workers, err := r.liveWorkers(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]model.WorkerStats, len(workers))
	for _, name := range workers {
		raw, err := r.client.HGet(ctx, keyWorker(name), "stats").Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("read stats for worker %s: %w", name, err)
		}
		var stats model.WorkerStats
		if uerr := json.Unmarshal([]byte(raw), &stats); uerr != nil {
			continue
		}
		out[name] = stats
	}
	return out, nil
}

func decodeTaskRefs(raws []string) []model.TaskRef {
	refs := make([]model.TaskRef, 0, len(raws))
	for _, raw := range raws {
		var ref model.TaskRef
		if err := json.Unmarshal([]byte(raw), &ref); err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simbadocs/docparse/internal/domain/model"
)

// DefaultResultTTL bounds how long a finished task's status record survives.
// After expiry a status query reports UNKNOWN, indistinguishable from an
// identifier that was never issued.
const DefaultResultTTL = 24 * time.Hour

// defaultPromoteBatch caps how many due scheduled tasks a single promotion
// pass moves onto the ready queue.
const defaultPromoteBatch = 100

// markStartedScript transitions PENDING to STARTED. A missing hash (expired
// or never written) and any non-PENDING state both refuse the transition.
var markStartedScript = redis.NewScript(`
local state = redis.call('HGET', KEYS[1], 'state')
if state ~= 'PENDING' then
	return 0
end
redis.call('HSET', KEYS[1], 'state', 'STARTED', 'worker', ARGV[1], 'started_at', ARGV[2])
return 1
`)

// terminalScript records a terminal state exactly once. The done marker is
// claimed with SET NX, so concurrent writers race on a single atomic step and
// every loser leaves the stored record untouched.
var terminalScript = redis.NewScript(`
if redis.call('SET', KEYS[2], ARGV[1], 'NX', 'EX', ARGV[2]) == false then
	return 0
end
redis.call('HSET', KEYS[1], 'state', ARGV[1], ARGV[3], ARGV[4], 'completed_at', ARGV[5])
redis.call('EXPIRE', KEYS[1], ARGV[2])
return 1
`)

// ackScript removes the reserved-list entry carrying the given task id.
var ackScript = redis.NewScript(`
local items = redis.call('LRANGE', KEYS[1], 0, -1)
for _, v in ipairs(items) do
	local ok, env = pcall(cjson.decode, v)
	if ok and env.task_id == ARGV[1] then
		redis.call('LREM', KEYS[1], 1, v)
		return 1
	end
end
return 0
`)

// promoteScript moves due scheduled envelopes onto the ready queue.
var promoteScript = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, ARGV[2])
for _, v in ipairs(due) do
	redis.call('LPUSH', KEYS[2], v)
	redis.call('ZREM', KEYS[1], v)
end
return #due
`)

// TaskRepoConfig holds configuration options for the task repository.
type TaskRepoConfig struct {
	// ResultTTL overrides DefaultResultTTL when positive.
	ResultTTL    time.Duration
	Logger       *slog.Logger
	TimeProvider TimeProvider
}

// TaskRepo provides Redis operations for the parse task queue and status
// store. It backs three ports at once: the dispatcher's TaskQueue, the status
// tracker's StatusStore and the worker's WorkerQueue.
type TaskRepo struct {
	client       redis.UniversalClient
	resultTTL    time.Duration
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewTaskRepo creates a new TaskRepo with the given Redis client and configuration.
func NewTaskRepo(client redis.UniversalClient, cfg TaskRepoConfig) *TaskRepo {
	ttl := cfg.ResultTTL
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}

	return &TaskRepo{
		client:       client,
		resultTTL:    ttl,
		timeProvider: tp,
		logger:       cfg.Logger,
	}
}

// Enqueue writes the PENDING status record and pushes the envelope onto the
// ready queue in one transaction.
func (r *TaskRepo) Enqueue(ctx context.Context, env model.TaskEnvelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	pipe := r.client.TxPipeline()
	r.writePendingStatus(ctx, pipe, env)
	pipe.LPush(ctx, keyQueue, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("enqueue task %s: %w", env.TaskID, err)
	}

	if r.logger != nil {
		r.logger.DebugContext(ctx, "task enqueued",
			"task_id", env.TaskID, "document_id", env.DocumentID, "parser", env.Parser)
	}
	return nil
}

// EnqueueAt writes the PENDING status record and parks the envelope in the
// scheduled set until eta.
func (r *TaskRepo) EnqueueAt(ctx context.Context, env model.TaskEnvelope, eta time.Time) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	pipe := r.client.TxPipeline()
	r.writePendingStatus(ctx, pipe, env)
	pipe.ZAdd(ctx, keyScheduled, redis.Z{
		Score:  float64(eta.UnixMilli()) / 1000,
		Member: payload,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("schedule task %s: %w", env.TaskID, err)
	}

	if r.logger != nil {
		r.logger.DebugContext(ctx, "task scheduled",
			"task_id", env.TaskID, "parser", env.Parser, "eta", eta)
	}
	return nil
}

func (r *TaskRepo) writePendingStatus(ctx context.Context, pipe redis.Pipeliner, env model.TaskEnvelope) {
	key := keyTask(env.TaskID)
	pipe.HSet(ctx, key,
		"state", string(model.TaskStatePending),
		"document_id", env.DocumentID,
		"parser", string(env.Parser),
		"submitted_at", env.SubmittedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, r.resultTTL)
}

// Get returns the status of a task. Identifiers with no stored record come
// back as UNKNOWN with a nil error; expired and never-issued identifiers are
// indistinguishable.
func (r *TaskRepo) Get(ctx context.Context, taskID string) (*model.TaskStatus, error) {
	if taskID == "" {
		return nil, ErrTaskIDRequired
	}

	fields, err := r.client.HGetAll(ctx, keyTask(taskID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", taskID, err)
	}
	if len(fields) == 0 {
		return &model.TaskStatus{TaskID: taskID, State: model.TaskStateUnknown}, nil
	}

	status := &model.TaskStatus{
		TaskID: taskID,
		State:  model.TaskState(fields["state"]),
	}
	switch status.State {
	case model.TaskStateSuccess:
		if raw := fields["result"]; raw != "" {
			status.Result = json.RawMessage(raw)
		}
	case model.TaskStateFailure:
		if msg := fields["error"]; msg != "" {
			status.Error = &msg
		}
	}
	if ts := fields["completed_at"]; ts != "" {
		if completed, perr := time.Parse(time.RFC3339Nano, ts); perr == nil {
			status.CompletedAt = &completed
		}
	}
	return status, nil
}

// Claim blocks up to the given duration for the next ready envelope, moving
// it onto the worker's reserved list so a crash between claim and terminal
// write leaves the task recoverable.
func (r *TaskRepo) Claim(ctx context.Context, worker string, block time.Duration) (*model.TaskEnvelope, error) {
	if worker == "" {
		return nil, ErrWorkerRequired
	}

	raw, err := r.client.BLMove(ctx, keyQueue, keyWorkerReserved(worker), "RIGHT", "LEFT", block).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoTasksAvailable
		}
		return nil, fmt.Errorf("claim task: %w", err)
	}

	var env model.TaskEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		// A malformed payload can never execute; drop it from the reserved
		// list so it does not wedge the worker.
		r.client.LRem(ctx, keyWorkerReserved(worker), 1, raw)
		return nil, fmt.Errorf("unmarshal claimed envelope: %w", err)
	}
	return &env, nil
}

// Ack removes a finished task from the worker's reserved list.
func (r *TaskRepo) Ack(ctx context.Context, worker, taskID string) error {
	if worker == "" {
		return ErrWorkerRequired
	}
	if taskID == "" {
		return ErrTaskIDRequired
	}

	if err := ackScript.Run(ctx, r.client, []string{keyWorkerReserved(worker)}, taskID).Err(); err != nil {
		return fmt.Errorf("ack task %s: %w", taskID, err)
	}
	return nil
}

// MarkStarted transitions a task from PENDING to STARTED for the named
// worker. Returns false without error when the task is missing or already
// past PENDING.
func (r *TaskRepo) MarkStarted(ctx context.Context, taskID, worker string) (bool, error) {
	if taskID == "" {
		return false, ErrTaskIDRequired
	}

	startedAt := r.timeProvider.Now().UTC().Format(time.RFC3339Nano)
	n, err := markStartedScript.Run(ctx, r.client, []string{keyTask(taskID)}, worker, startedAt).Int()
	if err != nil {
		return false, fmt.Errorf("mark task %s started: %w", taskID, err)
	}
	return n == 1, nil
}

// Complete records a terminal SUCCESS with the parse result. Returns false
// when another terminal write already won.
func (r *TaskRepo) Complete(ctx context.Context, taskID string, result json.RawMessage) (bool, error) {
	return r.writeTerminal(ctx, taskID, model.TaskStateSuccess, "result", string(result))
}

// Fail records a terminal FAILURE with a diagnostic message. Returns false
// when another terminal write already won.
func (r *TaskRepo) Fail(ctx context.Context, taskID, errMsg string) (bool, error) {
	return r.writeTerminal(ctx, taskID, model.TaskStateFailure, "error", errMsg)
}

func (r *TaskRepo) writeTerminal(ctx context.Context, taskID string, state model.TaskState, field, value string) (bool, error) {
	if taskID == "" {
		return false, ErrTaskIDRequired
	}

	completedAt := r.timeProvider.Now().UTC().Format(time.RFC3339Nano)
	ttlSeconds := strconv.Itoa(int(r.resultTTL / time.Second))
	n, err := terminalScript.Run(ctx, r.client,
		[]string{keyTask(taskID), keyTaskDone(taskID)},
		string(state), ttlSeconds, field, value, completedAt,
	).Int()
	if err != nil {
		return false, fmt.Errorf("write terminal state for task %s: %w", taskID, err)
	}

	won := n == 1
	if !won && r.logger != nil {
		r.logger.WarnContext(ctx, "terminal write lost race, keeping first result",
			"task_id", taskID, "attempted_state", state)
	}
	return won, nil
}

// PromoteScheduled moves tasks whose ETA has passed onto the ready queue and
// returns how many were promoted.
func (r *TaskRepo) PromoteScheduled(ctx context.Context, now time.Time) (int, error) {
	score := strconv.FormatFloat(float64(now.UnixMilli())/1000, 'f', 3, 64)
	n, err := promoteScript.Run(ctx, r.client,
		[]string{keyScheduled, keyQueue},
		score, strconv.Itoa(defaultPromoteBatch),
	).Int()
	if err != nil {
		return 0, fmt.Errorf("promote scheduled tasks: %w", err)
	}
	if n > 0 && r.logger != nil {
		r.logger.DebugContext(ctx, "promoted scheduled tasks", "count", n)
	}
	return n, nil
}

// Health checks the health of the Redis connection.
func (r *TaskRepo) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

package data

// Redis key layout for the parsing queue and status store. Everything lives
// under the parsing: prefix so one Redis can be shared with other services.
//
//	parsing:queue                     list   ready envelopes, LPUSH/BLMOVE
//	parsing:scheduled                 zset   deferred envelopes scored by ETA
//	parsing:task:<id>                 hash   task status record, expires
//	parsing:task:<id>:done            string terminal-write marker, expires
//	parsing:workers                   set    known worker names
//	parsing:worker:<name>             hash   heartbeat record, expires
//	parsing:worker:<name>:reserved    list   claimed-but-unacked envelopes
//	parsing:worker:<name>:active      hash   task_id -> executing task ref
const (
	keyQueue     = "parsing:queue"
	keyScheduled = "parsing:scheduled"
	keyWorkers   = "parsing:workers"
)

func keyTask(taskID string) string     { return "parsing:task:" + taskID }
func keyTaskDone(taskID string) string { return keyTask(taskID) + ":done" }

func keyWorker(name string) string         { return "parsing:worker:" + name }
func keyWorkerReserved(name string) string { return keyWorker(name) + ":reserved" }
func keyWorkerActive(name string) string   { return keyWorker(name) + ":active" }

package taskqueue

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the wire format for result timestamps: a local ISO-8601
// date-time without a zone offset.
const TimestampLayout = "2006-01-02T15:04:05"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusFailed     TaskStatus = "FAILED"
)

// ParseTaskStatus converts a status name into a TaskStatus.
// It returns ErrUnknownTaskStatus for any other value.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusFailed:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTaskStatus, s)
}

// ResultStatus represents the outcome of a task execution.
type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "SUCCESS"
	ResultStatusFailure ResultStatus = "FAILURE"
)

// ParseResultStatus converts a status name into a ResultStatus.
// It returns ErrUnknownResultStatus for any other value.
func ParseResultStatus(s string) (ResultStatus, error) {
	switch ResultStatus(s) {
	case ResultStatusSuccess, ResultStatusFailure:
		return ResultStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResultStatus, s)
}

// Task is a unit of work carrying opaque parameters and a priority.
// Identity is the UUID; two tasks are the same task iff their identifiers are
// equal, regardless of priority. Lower priority values are more urgent.
//
// The status field may be read and written concurrently; all other fields are
// immutable after construction.
type Task struct {
	id       uuid.UUID
	params   string
	priority int
	status   atomic.Value // TaskStatus
}

// NewTask creates a pending task with a fresh identifier.
func NewTask(params string, priority int) *Task {
	return RestoreTask(uuid.New(), params, priority, TaskStatusPending)
}

// RestoreTask creates a task with a caller-supplied identifier and status.
// Used by the snapshot load path; identifiers must survive a restart so that
// results submitted after recovery still correlate.
func RestoreTask(id uuid.UUID, params string, priority int, status TaskStatus) *Task {
	t := &Task{
		id:       id,
		params:   params,
		priority: priority,
	}
	t.status.Store(status)
	return t
}

// ID returns the unique task identifier.
func (t *Task) ID() uuid.UUID { return t.id }

// Params returns the opaque task parameters.
func (t *Task) Params() string { return t.params }

// Priority returns the task priority. Lower values dequeue first.
func (t *Task) Priority() int { return t.priority }

// Status returns the current lifecycle state.
func (t *Task) Status() TaskStatus {
	return t.status.Load().(TaskStatus)
}

// SetStatus transitions the task to the given state. Any transition is
// permitted; terminal states are informational only.
func (t *Task) SetStatus(s TaskStatus) {
	t.status.Store(s)
}

// MarshalJSON renders the task in its wire shape.
func (t *Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       uuid.UUID  `json:"id"`
		Params   string     `json:"params"`
		Priority int        `json:"priority"`
		Status   TaskStatus `json:"status"`
	}{t.id, t.params, t.priority, t.Status()})
}

// Result is the completion record for one task, keyed by the task identifier.
// Results are immutable after construction.
type Result struct {
	taskID    uuid.UUID
	output    string
	status    ResultStatus
	timestamp time.Time
}

// NewResult creates a result stamped with the current local time.
func NewResult(taskID uuid.UUID, output string, status ResultStatus) *Result {
	return RestoreResult(taskID, output, status, time.Now())
}

// RestoreResult creates a result with a caller-supplied timestamp.
// Used by the snapshot load path.
func RestoreResult(taskID uuid.UUID, output string, status ResultStatus, timestamp time.Time) *Result {
	return &Result{
		taskID:    taskID,
		output:    output,
		status:    status,
		timestamp: timestamp,
	}
}

// TaskID returns the identifier of the task this result belongs to.
func (r *Result) TaskID() uuid.UUID { return r.taskID }

// Output returns the opaque result output.
func (r *Result) Output() string { return r.output }

// Status returns the execution outcome.
func (r *Result) Status() ResultStatus { return r.status }

// Timestamp returns the creation instant in the service's local clock.
func (r *Result) Timestamp() time.Time { return r.timestamp }

// MarshalJSON renders the result in its wire shape. The timestamp carries no
// zone offset.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TaskID    uuid.UUID    `json:"taskId"`
		Output    string       `json:"output"`
		Status    ResultStatus `json:"status"`
		Timestamp string       `json:"timestamp"`
	}{r.taskID, r.output, r.status, r.timestamp.Format(TimestampLayout)})
}

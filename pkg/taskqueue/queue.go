package taskqueue

import (
	"sync"

	"github.com/google/uuid"
)

// Queue is a named container owning a priority-ordered pending-task
// collection and a task-id-keyed result map. All methods are safe for
// concurrent use.
type Queue struct {
	id      uuid.UUID
	name    string
	pending pendingQueue

	mu      sync.RWMutex
	results map[uuid.UUID]*Result
}

// NewQueue creates an empty queue with a fresh identifier.
func NewQueue(name string) *Queue {
	return RestoreQueue(uuid.New(), name)
}

// RestoreQueue creates an empty queue with a caller-supplied identifier.
// Used by the snapshot load path.
func RestoreQueue(id uuid.UUID, name string) *Queue {
	return &Queue{
		id:      id,
		name:    name,
		results: make(map[uuid.UUID]*Result),
	}
}

// ID returns the unique queue identifier.
func (q *Queue) ID() uuid.UUID { return q.id }

// Name returns the queue name. Names may repeat across queues.
func (q *Queue) Name() string { return q.name }

// Enqueue inserts a task into the pending collection. It returns false and
// makes no change when the task is nil. The task's status is left untouched.
//
// A task whose identifier already appears in the collection is accepted; the
// pending collection holds duplicates by identity.
func (q *Queue) Enqueue(t *Task) bool {
	if t == nil {
		return false
	}
	q.pending.push(t)
	return true
}

// Dequeue atomically removes and returns the pending task with the lowest
// priority, or nil when the queue is empty. Ties among equal priorities are
// broken in an unspecified order. Dequeue does not alter the task's status.
func (q *Queue) Dequeue() *Task {
	return q.pending.pop()
}

// AddResult stores a result keyed by its task identifier, overwriting any
// prior entry with the same key. It returns false and makes no change when
// the result is nil or carries a zero task identifier.
//
// A result for a task that is not in the pending collection is accepted: a
// worker may submit after its task was dequeued elsewhere.
func (q *Queue) AddResult(r *Result) bool {
	if r == nil || r.taskID == uuid.Nil {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.results[r.taskID] = r
	return true
}

// GetResult returns the stored result for the task identifier, or nil.
func (q *Queue) GetResult(taskID uuid.UUID) *Result {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.results[taskID]
}

// TaskCount returns the number of pending tasks.
func (q *Queue) TaskCount() int {
	return q.pending.len()
}

// ResultCount returns the number of stored results.
func (q *Queue) ResultCount() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.results)
}

// HasPending reports whether the queue currently holds pending tasks.
func (q *Queue) HasPending() bool {
	return q.pending.len() > 0
}

// SnapshotTasks returns a point-in-time view of the pending tasks.
func (q *Queue) SnapshotTasks() []*Task {
	return q.pending.snapshot()
}

// SnapshotResults returns a point-in-time view of the stored results.
func (q *Queue) SnapshotResults() []*Result {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]*Result, 0, len(q.results))
	for _, r := range q.results {
		out = append(out, r)
	}
	return out
}

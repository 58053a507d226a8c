package taskqueue

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Registry is the process-wide directory mapping queue id to Queue.
// Mutations are serialized so that Clear cannot interleave with Create and
// leave orphaned queues. Consumers should receive a Registry reference
// rather than reach for a global; a fresh Registry per test keeps tests
// independent.
type Registry struct {
	mu     sync.RWMutex
	queues map[uuid.UUID]*Queue
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{queues: make(map[uuid.UUID]*Queue)}
}

// Create constructs a queue with the trimmed name, installs it under a fresh
// identifier, and returns it. Name content is not validated here; that
// belongs to the facade.
func (r *Registry) Create(name string) *Queue {
	q := NewQueue(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queues[q.id] = q
	return q
}

// Get returns the queue registered under the identifier.
func (r *Registry) Get(id uuid.UUID) (*Queue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.queues[id]
	return q, ok
}

// Remove deletes the queue registered under the identifier and reports
// whether a queue was removed.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.queues[id]; !ok {
		return false
	}
	delete(r.queues, id)
	return true
}

// Clear empties the directory and returns the number of queues removed.
func (r *Registry) Clear() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.queues)
	clear(r.queues)
	return n
}

// All returns a point-in-time copy of the directory suitable for
// enumeration by the snapshot engine.
func (r *Registry) All() map[uuid.UUID]*Queue {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uuid.UUID]*Queue, len(r.queues))
	for id, q := range r.queues {
		out[id] = q
	}
	return out
}

// Len returns the number of registered queues.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.queues)
}

// install registers a restored queue under its own identifier, replacing any
// existing entry.
func (r *Registry) install(q *Queue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queues[q.id] = q
}

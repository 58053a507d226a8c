package queueapi

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskqueue/pkg/taskqueue"
)

// Service wraps a Registry with input validation and error translation.
// It owns no state of its own and is safe for concurrent use.
type Service struct {
	reg *taskqueue.Registry
}

// NewService creates a facade over the registry.
func NewService(reg *taskqueue.Registry) *Service {
	return &Service{reg: reg}
}

// QueueStatus is the aggregate view consumers poll to detect queue drain.
type QueueStatus struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	PendingTaskCount     int       `json:"pendingTaskCount"`
	CompletedResultCount int       `json:"completedResultCount"`
	HasPendingTasks      bool      `json:"hasPendingTasks"`
}

// CreateQueue creates a queue with the trimmed name. Whitespace-only names
// are rejected with ErrQueueNameRequired.
func (s *Service) CreateQueue(name string) (*taskqueue.Queue, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrQueueNameRequired
	}
	return s.reg.Create(name), nil
}

// EnqueueTask inserts the task into the queue. The task's status stays
// pending.
func (s *Service) EnqueueTask(queueID uuid.UUID, task *taskqueue.Task) error {
	if queueID == uuid.Nil {
		return ErrQueueIDRequired
	}
	if task == nil {
		return ErrTaskRequired
	}
	q, ok := s.reg.Get(queueID)
	if !ok {
		return ErrQueueNotFound
	}
	q.Enqueue(task)
	return nil
}

// DequeueTask removes and returns the highest-priority task, flipping its
// status to in-progress. It returns (nil, nil) when the queue is empty.
func (s *Service) DequeueTask(queueID uuid.UUID) (*taskqueue.Task, error) {
	if queueID == uuid.Nil {
		return nil, ErrQueueIDRequired
	}
	q, ok := s.reg.Get(queueID)
	if !ok {
		return nil, ErrQueueNotFound
	}
	task := q.Dequeue()
	if task != nil {
		task.SetStatus(taskqueue.TaskStatusInProgress)
	}
	return task, nil
}

// SubmitResult stores the result in the queue, overwriting any prior result
// for the same task identifier. A result without a task identifier is
// rejected with ErrTaskIDRequired.
func (s *Service) SubmitResult(queueID uuid.UUID, result *taskqueue.Result) error {
	if queueID == uuid.Nil {
		return ErrQueueIDRequired
	}
	if result == nil {
		return ErrResultRequired
	}
	q, ok := s.reg.Get(queueID)
	if !ok {
		return ErrQueueNotFound
	}
	if !q.AddResult(result) {
		return ErrTaskIDRequired
	}
	return nil
}

// GetResult returns the stored result for the task identifier, or
// ErrResultNotFound.
func (s *Service) GetResult(queueID, taskID uuid.UUID) (*taskqueue.Result, error) {
	if queueID == uuid.Nil {
		return nil, ErrQueueIDRequired
	}
	if taskID == uuid.Nil {
		return nil, ErrTaskIDRequired
	}
	q, ok := s.reg.Get(queueID)
	if !ok {
		return nil, ErrQueueNotFound
	}
	result := q.GetResult(taskID)
	if result == nil {
		return nil, ErrResultNotFound
	}
	return result, nil
}

// Status returns the aggregate queue view.
func (s *Service) Status(queueID uuid.UUID) (QueueStatus, error) {
	if queueID == uuid.Nil {
		return QueueStatus{}, ErrQueueIDRequired
	}
	q, ok := s.reg.Get(queueID)
	if !ok {
		return QueueStatus{}, ErrQueueNotFound
	}
	return QueueStatus{
		ID:                   q.ID(),
		Name:                 q.Name(),
		PendingTaskCount:     q.TaskCount(),
		CompletedResultCount: q.ResultCount(),
		HasPendingTasks:      q.HasPending(),
	}, nil
}

// ClearAll empties the registry and returns the number of queues removed.
func (s *Service) ClearAll() int {
	return s.reg.Clear()
}

package queueapi

import "errors"

var (
	// ErrQueueNameRequired is returned when a queue name is absent or whitespace-only.
	ErrQueueNameRequired = errors.New("queue name cannot be empty")

	// ErrQueueIDRequired is returned when a queue identifier is absent.
	ErrQueueIDRequired = errors.New("queue id is required")

	// ErrTaskRequired is returned when a task is absent.
	ErrTaskRequired = errors.New("task cannot be nil")

	// ErrResultRequired is returned when a result is absent.
	ErrResultRequired = errors.New("result cannot be nil")

	// ErrTaskIDRequired is returned when a submitted result carries no task identifier.
	ErrTaskIDRequired = errors.New("result task id is required")

	// ErrQueueNotFound is returned when the referenced queue does not exist.
	ErrQueueNotFound = errors.New("queue does not exist")

	// ErrResultNotFound is returned when no result exists for the task identifier.
	ErrResultNotFound = errors.New("result does not exist")
)

package taskqueue

import "errors"

var (
	// ErrUnknownTaskStatus is returned when a status name does not match any task status.
	ErrUnknownTaskStatus = errors.New("unknown task status")

	// ErrUnknownResultStatus is returned when a status name does not match any result status.
	ErrUnknownResultStatus = errors.New("unknown result status")

	// ErrSnapshotSave is returned when the snapshot file could not be written or replaced.
	ErrSnapshotSave = errors.New("failed to save queue snapshot")

	// ErrSnapshotLoad is returned when the snapshot file could not be read.
	ErrSnapshotLoad = errors.New("failed to load queue snapshot")
)

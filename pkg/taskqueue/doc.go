// Package taskqueue implements the in-memory core of a multi-tenant priority
// task-queue service: named queues holding priority-ordered pending tasks and
// task-keyed results, a process-wide queue registry, and a snapshot engine
// that persists the registry to disk with atomic file replacement.
//
// The package is organised around four components:
//
//   - Task / Result  — the work item and its completion record
//   - Queue          — a named container with a concurrent priority collection
//   - Registry       — the directory mapping queue id to Queue
//   - Snapshotter    — periodic and shutdown-driven persistence
//
// # Concurrency
//
// Queues are safe for multiple concurrent producers and consumers. Dequeue is
// atomic: a task identifier removed from a queue is never handed to two
// callers. The result map is guarded by a per-queue lock, so a result write
// that happens before a read in lock order is always observable by the read.
//
// # Ordering
//
// Lower priority values dequeue first. Ties among equal priorities are broken
// in an unspecified order; callers must not rely on FIFO behaviour within a
// priority tier. Task identity (the UUID) plays no part in ordering.
//
// # Persistence
//
// The Snapshotter serialises every queue, task, and result to a single JSON
// file using a write-temp-then-rename protocol, so the file on disk is never a
// partially written snapshot. Loading is
// fault-tolerant per record: one corrupted entry never prevents the rest of
// the state from being recovered. Task identifiers survive the round trip,
// which keeps result correlation working across restarts.
//
// # Usage
//
//	reg := taskqueue.NewRegistry()
//	snap := taskqueue.NewSnapshotter(reg, taskqueue.WithSnapshotDir("/var/lib/taskqueue"))
//	if err := snap.Load(); err != nil {
//	    // io failure; the registry starts with whatever could be recovered
//	}
//	go snap.Run(ctx)
//
//	q := reg.Create("renders")
//	q.Enqueue(taskqueue.NewTask(`{"page":5}`, 1))
//	if t := q.Dequeue(); t != nil {
//	    t.SetStatus(taskqueue.TaskStatusInProgress)
//	}
package taskqueue

package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// SnapshotFileName is the primary snapshot file, relative to the snapshot directory.
	SnapshotFileName = "queue_snapshot.json"
	// SnapshotTempFileName is the write target replaced onto the primary file.
	SnapshotTempFileName = "queue_snapshot.tmp"

	// DefaultSnapshotInterval is the period between automatic saves.
	DefaultSnapshotInterval = 30 * time.Second

	snapshotVersion = "1.0"
)

// Wire records for the snapshot file. Identifiers are canonical 36-character
// UUID text; result timestamps use TimestampLayout.
type snapshotData struct {
	Queues    []queueRecord `json:"queues"`
	Timestamp int64         `json:"timestamp"`
	Version   string        `json:"version"`
}

type queueRecord struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Tasks   []taskRecord   `json:"tasks"`
	Results []resultRecord `json:"results"`
}

type taskRecord struct {
	ID       string `json:"id"`
	Params   string `json:"params"`
	Priority int    `json:"priority"`
	Status   string `json:"status"`
}

type resultRecord struct {
	TaskID    string `json:"taskId"`
	Output    string `json:"output"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Snapshotter persists a Registry to disk and restores it at startup.
//
// Save writes the whole registry to a temp file, removes the old primary file,
// and renames the temp file onto the primary, so the primary is never a
// partially written file; if the rename fails after the removal, no primary
// file is left until the next successful save. Saves are serialized by an
// internal lock; per-queue
// state is read through the queues' own point-in-time views, so a save never
// holds any queue lock for the duration of the file write.
type Snapshotter struct {
	reg      *Registry
	dir      string
	interval time.Duration
	log      *slog.Logger

	saveMu sync.Mutex
}

// NewSnapshotter creates a snapshot engine for the registry. By default
// snapshots live in the working directory and are saved every
// DefaultSnapshotInterval.
func NewSnapshotter(reg *Registry, opts ...SnapshotterOption) *Snapshotter {
	s := &Snapshotter{
		reg:      reg,
		dir:      ".",
		interval: DefaultSnapshotInterval,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save serialises the registry and atomically replaces the snapshot file.
// Concurrent callers serialize on the save lock. A failure to remove the old
// primary file is logged and the save continues; a failed rename is returned
// wrapped in ErrSnapshotSave.
func (s *Snapshotter) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	data := snapshotData{
		Queues:    []queueRecord{},
		Timestamp: time.Now().UnixMilli(),
		Version:   snapshotVersion,
	}

	taskTotal := 0
	for id, q := range s.reg.All() {
		rec := queueRecord{
			ID:      id.String(),
			Name:    q.Name(),
			Tasks:   []taskRecord{},
			Results: []resultRecord{},
		}
		for _, t := range q.SnapshotTasks() {
			rec.Tasks = append(rec.Tasks, taskRecord{
				ID:       t.ID().String(),
				Params:   t.Params(),
				Priority: t.Priority(),
				Status:   string(t.Status()),
			})
		}
		for _, r := range q.SnapshotResults() {
			rec.Results = append(rec.Results, resultRecord{
				TaskID:    r.TaskID().String(),
				Output:    r.Output(),
				Status:    string(r.Status()),
				Timestamp: r.Timestamp().Format(TimestampLayout),
			})
		}
		taskTotal += len(rec.Tasks)
		data.Queues = append(data.Queues, rec)
	}

	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Join(ErrSnapshotSave, err)
	}

	tempPath := filepath.Join(s.dir, SnapshotTempFileName)
	primaryPath := filepath.Join(s.dir, SnapshotFileName)

	if err := os.WriteFile(tempPath, buf, 0o644); err != nil {
		return errors.Join(ErrSnapshotSave, err)
	}

	if _, err := os.Stat(primaryPath); err == nil {
		if err := os.Remove(primaryPath); err != nil {
			s.log.Warn("failed to remove previous snapshot file",
				slog.String("path", primaryPath),
				slog.String("error", err.Error()))
		}
	}

	if err := os.Rename(tempPath, primaryPath); err != nil {
		s.log.Error("failed to replace snapshot file",
			slog.String("path", primaryPath),
			slog.String("error", err.Error()))
		return errors.Join(ErrSnapshotSave, err)
	}

	s.log.Debug("snapshot saved",
		slog.Int("queues", len(data.Queues)),
		slog.Int("tasks", taskTotal))
	return nil
}

// Load restores the registry from the snapshot file. A missing or empty file
// leaves the registry untouched. An unparseable file is logged and skipped.
// Within a parseable file, recovery is per record: a queue record with an
// invalid identifier is skipped whole; a task or result record that fails to
// parse is skipped alone and the rest of its queue is still restored.
//
// Restored tasks keep their original identifiers and statuses so that
// results arriving after a restart still correlate.
func (s *Snapshotter) Load() error {
	path := filepath.Join(s.dir, SnapshotFileName)

	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("no snapshot file found, starting with empty registry")
		return nil
	}
	if err != nil {
		return errors.Join(ErrSnapshotLoad, err)
	}
	if len(buf) == 0 {
		s.log.Info("snapshot file is empty, starting with empty registry")
		return nil
	}

	var data snapshotData
	if err := json.Unmarshal(buf, &data); err != nil {
		s.log.Warn("snapshot file is not parseable, starting with empty registry",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil
	}
	if data.Queues == nil {
		s.log.Warn("snapshot file has no queues field, starting with empty registry",
			slog.String("path", path))
		return nil
	}

	var queues, tasks, results int
	for _, rec := range data.Queues {
		queueID, err := uuid.Parse(rec.ID)
		if err != nil {
			s.log.Warn("skipping queue record with invalid id",
				slog.String("queue_id", rec.ID),
				slog.String("error", err.Error()))
			continue
		}

		q := RestoreQueue(queueID, rec.Name)

		for _, tr := range rec.Tasks {
			taskID, err := uuid.Parse(tr.ID)
			if err != nil {
				s.log.Warn("skipping task record with invalid id",
					slog.String("queue_id", rec.ID),
					slog.String("task_id", tr.ID),
					slog.String("error", err.Error()))
				continue
			}
			status, err := ParseTaskStatus(tr.Status)
			if err != nil {
				s.log.Warn("skipping task record with invalid status",
					slog.String("task_id", tr.ID),
					slog.String("error", err.Error()))
				continue
			}
			q.Enqueue(RestoreTask(taskID, tr.Params, tr.Priority, status))
			tasks++
		}

		for _, rr := range rec.Results {
			taskID, err := uuid.Parse(rr.TaskID)
			if err != nil {
				s.log.Warn("skipping result record with invalid task id",
					slog.String("task_id", rr.TaskID),
					slog.String("error", err.Error()))
				continue
			}
			status, err := ParseResultStatus(rr.Status)
			if err != nil {
				s.log.Warn("skipping result record with invalid status",
					slog.String("task_id", rr.TaskID),
					slog.String("error", err.Error()))
				continue
			}
			ts, err := time.ParseInLocation(TimestampLayout, rr.Timestamp, time.Local)
			if err != nil {
				s.log.Warn("skipping result record with invalid timestamp",
					slog.String("task_id", rr.TaskID),
					slog.String("error", err.Error()))
				continue
			}
			q.AddResult(RestoreResult(taskID, rr.Output, status, ts))
			results++
		}

		s.reg.install(q)
		queues++
	}

	s.log.Info("snapshot loaded",
		slog.Int("queues", queues),
		slog.Int("tasks", tasks),
		slog.Int("results", results))
	return nil
}

// Run saves periodically until the context is cancelled, then writes one
// final snapshot and returns the context error. The first automatic save
// happens one interval after Run starts.
func (s *Snapshotter) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("snapshotter shutting down, saving final snapshot")
			if err := s.Save(); err != nil {
				s.log.Error("final snapshot failed", slog.String("error", err.Error()))
			}
			return ctx.Err()
		case <-ticker.C:
			if err := s.Save(); err != nil {
				s.log.Error("periodic snapshot failed", slog.String("error", err.Error()))
			}
		}
	}
}

package taskqueue

import (
	"log/slog"
	"time"
)

// SnapshotterOption configures a Snapshotter.
type SnapshotterOption func(*Snapshotter)

// WithSnapshotDir sets the directory holding the snapshot file pair.
func WithSnapshotDir(dir string) SnapshotterOption {
	if dir == "" {
		panic("WithSnapshotDir: dir cannot be empty")
	}
	return func(s *Snapshotter) { s.dir = dir }
}

// WithSnapshotInterval sets the period between automatic saves.
func WithSnapshotInterval(d time.Duration) SnapshotterOption {
	if d <= 0 {
		panic("WithSnapshotInterval: duration must be > 0")
	}
	return func(s *Snapshotter) { s.interval = d }
}

// WithSnapshotLogger sets the logger. Nil loggers are ignored.
func WithSnapshotLogger(l *slog.Logger) SnapshotterOption {
	return func(s *Snapshotter) {
		if l != nil {
			s.log = l
		}
	}
}

// The taskqueue worker polls a queue for tasks, executes them, and submits
// results keyed by task identifier. The service tracks no worker identity;
// any number of workers may poll the same queue.
//
// Usage:
//
//	worker -server http://localhost:8080 -queue <queue-id> -interval 2s
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskqueue/pkg/client"
	"github.com/dmitrymomot/taskqueue/pkg/logger"
)

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "task-queue service base URL")
		queueID   = flag.String("queue", "", "queue id to poll (required)")
		interval  = flag.Duration("interval", 2*time.Second, "poll interval when the queue is empty")
	)
	flag.Parse()

	log := logger.New(logger.WithFormat(logger.FormatText), logger.WithService("worker"))

	qid, err := uuid.Parse(*queueID)
	if err != nil {
		log.Error("invalid or missing -queue flag", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(*serverURL)
	log.Info("worker started",
		slog.String("server", *serverURL),
		slog.String("queue_id", qid.String()))

	for {
		task, err := c.DequeueTask(ctx, qid)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Error("dequeue failed", logger.Error(err))
			if !sleep(ctx, *interval) {
				break
			}
			continue
		}
		if task == nil {
			if !sleep(ctx, *interval) {
				break
			}
			continue
		}

		log.Info("processing task",
			slog.String("task_id", task.ID.String()),
			slog.Int("priority", task.Priority))

		output, status := execute(task)

		if _, err := c.SubmitResult(ctx, qid, task.ID, output, status); err != nil {
			log.Error("submit result failed",
				slog.String("task_id", task.ID.String()),
				logger.Error(err))
			continue
		}
		log.Info("result submitted",
			slog.String("task_id", task.ID.String()),
			slog.String("status", status))
	}

	log.Info("worker stopped")
}

// execute runs the task. The stock worker simply echoes the parameters; real
// deployments replace this with their own processing.
func execute(task *client.Task) (output, status string) {
	return fmt.Sprintf("processed: %s", task.Params), "SUCCESS"
}

// sleep waits for the duration and reports false when the context ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

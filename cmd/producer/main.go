// The taskqueue producer creates a queue (or reuses an existing one) and
// submits a batch of tasks to it, printing the queue and task identifiers so
// that workers and aggregators can be pointed at them.
//
// Usage:
//
//	producer -server http://localhost:8080 -name renders -count 10
//	producer -server http://localhost:8080 -queue <queue-id> -count 5 -priority 1
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskqueue/pkg/client"
	"github.com/dmitrymomot/taskqueue/pkg/logger"
)

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "task-queue service base URL")
		name      = flag.String("name", "", "name for a new queue (ignored when -queue is set)")
		queueID   = flag.String("queue", "", "existing queue id to enqueue into")
		count     = flag.Int("count", 1, "number of tasks to enqueue")
		priority  = flag.Int("priority", 0, "priority for every task; lower dequeues first")
	)
	flag.Parse()

	log := logger.New(logger.WithFormat(logger.FormatText), logger.WithService("producer"))
	c := client.New(*serverURL)
	ctx := context.Background()

	var qid uuid.UUID
	switch {
	case *queueID != "":
		var err error
		qid, err = uuid.Parse(*queueID)
		if err != nil {
			log.Error("invalid -queue flag", logger.Error(err))
			os.Exit(1)
		}
	case *name != "":
		q, err := c.CreateQueue(ctx, *name)
		if err != nil {
			log.Error("create queue failed", logger.Error(err))
			os.Exit(1)
		}
		qid = q.ID
		fmt.Printf("queue: %s\n", q.ID)
	default:
		log.Error("either -name or -queue is required")
		os.Exit(1)
	}

	for i := range *count {
		params := fmt.Sprintf(`{"task":%d}`, i)
		task, err := c.EnqueueTask(ctx, qid, params, *priority)
		if err != nil {
			log.Error("enqueue failed", slog.Int("task", i), logger.Error(err))
			os.Exit(1)
		}
		fmt.Printf("task: %s\n", task.ID)
	}

	log.Info("done", slog.Int("enqueued", *count), slog.String("queue_id", qid.String()))
}

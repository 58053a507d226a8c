package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// QueuesCreatedTotal counts queues created over the API.
	QueuesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskqueue_queues_created_total",
		Help: "Total number of queues created.",
	})

	// TasksEnqueuedTotal counts tasks accepted into queues.
	TasksEnqueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskqueue_tasks_enqueued_total",
		Help: "Total number of tasks enqueued.",
	})

	// TasksDequeuedTotal counts tasks handed out to workers.
	TasksDequeuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskqueue_tasks_dequeued_total",
		Help: "Total number of tasks dequeued.",
	})

	// ResultsSubmittedTotal counts submitted results by outcome.
	ResultsSubmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskqueue_results_submitted_total",
		Help: "Total number of results submitted.",
	}, []string{"status"})

	// QueuesClearedTotal counts queues removed by the admin clear endpoint.
	QueuesClearedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskqueue_queues_cleared_total",
		Help: "Total number of queues removed by admin clear.",
	})
)

// Handler returns the HTTP handler serving the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

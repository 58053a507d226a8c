package queueapi

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// Router mounts the queue API:
//
//	POST   /queue                          create a queue
//	POST   /queue/{queueID}/task           enqueue a task
//	GET    /queue/{queueID}/task           dequeue the next task (204 when empty)
//	POST   /queue/{queueID}/result         submit a result
//	GET    /queue/{queueID}/result/{taskID} fetch a result
//	GET    /queue/{queueID}/status         aggregate queue status
//	DELETE /queue/admin/clear              remove every queue
//
// A nil logger is replaced with a discarding one.
func Router(svc *Service, log *slog.Logger) chi.Router {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := &handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Route("/queue", func(r chi.Router) {
		r.Post("/", h.createQueue)
		r.Delete("/admin/clear", h.clearAll)
		r.Route("/{queueID}", func(r chi.Router) {
			r.Post("/task", h.enqueueTask)
			r.Get("/task", h.dequeueTask)
			r.Post("/result", h.submitResult)
			r.Get("/result/{taskID}", h.getResult)
			r.Get("/status", h.queueStatus)
		})
	})
	return r
}

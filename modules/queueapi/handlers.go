package queueapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/taskqueue/pkg/metrics"
	"github.com/dmitrymomot/taskqueue/pkg/taskqueue"
)

type handler struct {
	svc *Service
	log *slog.Logger
}

type createQueueRequest struct {
	Name string `json:"name"`
}

type enqueueTaskRequest struct {
	Params   string `json:"params"`
	Priority int    `json:"priority"`
}

type submitResultRequest struct {
	TaskID string `json:"taskId"`
	Output string `json:"output"`
	Status string `json:"status"`
}

// queueResponse is the creation view of a queue.
type queueResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TaskCount   int       `json:"taskCount"`
	ResultCount int       `json:"resultCount"`
}

type clearResponse struct {
	Message       string `json:"message"`
	QueuesCleared int    `json:"queuesCleared"`
}

func (h *handler) createQueue(w http.ResponseWriter, r *http.Request) {
	var req createQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.clientError(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}

	q, err := h.svc.CreateQueue(req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log.Info("queue created",
		slog.String("queue_id", q.ID().String()),
		slog.String("name", q.Name()))
	metrics.QueuesCreatedTotal.Inc()

	writeJSON(w, http.StatusCreated, queueResponse{
		ID:          q.ID(),
		Name:        q.Name(),
		TaskCount:   q.TaskCount(),
		ResultCount: q.ResultCount(),
	})
}

func (h *handler) enqueueTask(w http.ResponseWriter, r *http.Request) {
	queueID, ok := h.parseID(w, r, "queueID", "queue id")
	if !ok {
		return
	}

	var req enqueueTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.clientError(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}

	task := taskqueue.NewTask(req.Params, req.Priority)
	if err := h.svc.EnqueueTask(queueID, task); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log.Info("task enqueued",
		slog.String("queue_id", queueID.String()),
		slog.String("task_id", task.ID().String()),
		slog.Int("priority", task.Priority()))
	metrics.TasksEnqueuedTotal.Inc()

	writeJSON(w, http.StatusCreated, task)
}

func (h *handler) dequeueTask(w http.ResponseWriter, r *http.Request) {
	queueID, ok := h.parseID(w, r, "queueID", "queue id")
	if !ok {
		return
	}

	task, err := h.svc.DequeueTask(queueID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if task == nil {
		h.log.Info("dequeue on empty queue", slog.String("queue_id", queueID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.log.Info("task dequeued",
		slog.String("queue_id", queueID.String()),
		slog.String("task_id", task.ID().String()))
	metrics.TasksDequeuedTotal.Inc()

	writeJSON(w, http.StatusOK, task)
}

func (h *handler) submitResult(w http.ResponseWriter, r *http.Request) {
	queueID, ok := h.parseID(w, r, "queueID", "queue id")
	if !ok {
		return
	}

	var req submitResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.clientError(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}

	// An absent taskId flows through as the zero UUID so the facade can
	// report it; a present but malformed one is a transport-level fault.
	taskID := uuid.Nil
	if req.TaskID != "" {
		var err error
		taskID, err = uuid.Parse(req.TaskID)
		if err != nil {
			h.clientError(w, r, fmt.Errorf("invalid task id: %w", err))
			return
		}
	}

	status, err := taskqueue.ParseResultStatus(req.Status)
	if err != nil {
		h.clientError(w, r, err)
		return
	}

	result := taskqueue.NewResult(taskID, req.Output, status)
	if err := h.svc.SubmitResult(queueID, result); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log.Info("result submitted",
		slog.String("queue_id", queueID.String()),
		slog.String("task_id", taskID.String()),
		slog.String("status", string(status)))
	metrics.ResultsSubmittedTotal.WithLabelValues(string(status)).Inc()

	writeJSON(w, http.StatusCreated, result)
}

func (h *handler) getResult(w http.ResponseWriter, r *http.Request) {
	queueID, ok := h.parseID(w, r, "queueID", "queue id")
	if !ok {
		return
	}
	taskID, ok := h.parseID(w, r, "taskID", "task id")
	if !ok {
		return
	}

	result, err := h.svc.GetResult(queueID, taskID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log.Info("result fetched",
		slog.String("queue_id", queueID.String()),
		slog.String("task_id", taskID.String()))

	writeJSON(w, http.StatusOK, result)
}

func (h *handler) queueStatus(w http.ResponseWriter, r *http.Request) {
	queueID, ok := h.parseID(w, r, "queueID", "queue id")
	if !ok {
		return
	}

	status, err := h.svc.Status(queueID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log.Info("queue status fetched", slog.String("queue_id", queueID.String()))

	writeJSON(w, http.StatusOK, status)
}

func (h *handler) clearAll(w http.ResponseWriter, r *http.Request) {
	n := h.svc.ClearAll()

	h.log.Info("all queues cleared", slog.Int("queues_cleared", n))
	metrics.QueuesClearedTotal.Add(float64(n))

	writeJSON(w, http.StatusOK, clearResponse{
		Message:       "all queues cleared",
		QueuesCleared: n,
	})
}

// parseID extracts and parses a UUID path parameter. On failure it writes a
// 400 response and returns ok=false.
func (h *handler) parseID(w http.ResponseWriter, r *http.Request, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		h.clientError(w, r, fmt.Errorf("invalid %s: %w", label, err))
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps facade errors onto status codes: absence is 404,
// everything else a client fault at 400. Error messages pass through as
// plain text.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, ErrQueueNotFound) || errors.Is(err, ErrResultNotFound) {
		status = http.StatusNotFound
	}
	h.log.Warn("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()))
	http.Error(w, err.Error(), status)
}

func (h *handler) clientError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Warn("bad request",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

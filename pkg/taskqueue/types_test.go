package taskqueue_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskqueue/pkg/taskqueue"
)

func TestNewTask(t *testing.T) {
	task := taskqueue.NewTask(`{"page":5}`, 3)

	assert.NotEqual(t, uuid.Nil, task.ID())
	assert.Equal(t, `{"page":5}`, task.Params())
	assert.Equal(t, 3, task.Priority())
	assert.Equal(t, taskqueue.TaskStatusPending, task.Status())

	t.Run("identifiers are unique", func(t *testing.T) {
		other := taskqueue.NewTask(`{"page":5}`, 3)
		assert.NotEqual(t, task.ID(), other.ID())
	})
}

func TestRestoreTask(t *testing.T) {
	id := uuid.New()
	task := taskqueue.RestoreTask(id, "payload", -7, taskqueue.TaskStatusInProgress)

	assert.Equal(t, id, task.ID())
	assert.Equal(t, "payload", task.Params())
	assert.Equal(t, -7, task.Priority())
	assert.Equal(t, taskqueue.TaskStatusInProgress, task.Status())
}

func TestTask_SetStatus(t *testing.T) {
	t.Run("any transition is permitted", func(t *testing.T) {
		task := taskqueue.NewTask("", 0)
		task.SetStatus(taskqueue.TaskStatusCompleted)
		assert.Equal(t, taskqueue.TaskStatusCompleted, task.Status())
		task.SetStatus(taskqueue.TaskStatusPending)
		assert.Equal(t, taskqueue.TaskStatusPending, task.Status())
	})

	t.Run("safe under concurrent access", func(t *testing.T) {
		task := taskqueue.NewTask("", 0)
		statuses := []taskqueue.TaskStatus{
			taskqueue.TaskStatusPending,
			taskqueue.TaskStatusInProgress,
			taskqueue.TaskStatusCompleted,
			taskqueue.TaskStatusFailed,
		}

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(2)
			go func(s taskqueue.TaskStatus) {
				defer wg.Done()
				task.SetStatus(s)
			}(statuses[i%len(statuses)])
			go func() {
				defer wg.Done()
				_ = task.Status()
			}()
		}
		wg.Wait()

		assert.Contains(t, statuses, task.Status())
	})
}

func TestTask_MarshalJSON(t *testing.T) {
	task := taskqueue.NewTask("p", 2)

	buf, err := json.Marshal(task)
	require.NoError(t, err)

	var decoded struct {
		ID       string `json:"id"`
		Params   string `json:"params"`
		Priority int    `json:"priority"`
		Status   string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(buf, &decoded))
	assert.Equal(t, task.ID().String(), decoded.ID)
	assert.Equal(t, "p", decoded.Params)
	assert.Equal(t, 2, decoded.Priority)
	assert.Equal(t, "PENDING", decoded.Status)
}

func TestParseTaskStatus(t *testing.T) {
	for _, name := range []string{"PENDING", "IN_PROGRESS", "COMPLETED", "FAILED"} {
		status, err := taskqueue.ParseTaskStatus(name)
		require.NoError(t, err)
		assert.Equal(t, taskqueue.TaskStatus(name), status)
	}

	_, err := taskqueue.ParseTaskStatus("BOGUS")
	assert.ErrorIs(t, err, taskqueue.ErrUnknownTaskStatus)

	_, err = taskqueue.ParseTaskStatus("pending")
	assert.ErrorIs(t, err, taskqueue.ErrUnknownTaskStatus)
}

func TestParseResultStatus(t *testing.T) {
	for _, name := range []string{"SUCCESS", "FAILURE"} {
		status, err := taskqueue.ParseResultStatus(name)
		require.NoError(t, err)
		assert.Equal(t, taskqueue.ResultStatus(name), status)
	}

	_, err := taskqueue.ParseResultStatus("BOGUS")
	assert.ErrorIs(t, err, taskqueue.ErrUnknownResultStatus)
}

func TestNewResult(t *testing.T) {
	taskID := uuid.New()
	before := time.Now()
	res := taskqueue.NewResult(taskID, "ok", taskqueue.ResultStatusSuccess)
	after := time.Now()

	assert.Equal(t, taskID, res.TaskID())
	assert.Equal(t, "ok", res.Output())
	assert.Equal(t, taskqueue.ResultStatusSuccess, res.Status())
	assert.False(t, res.Timestamp().Before(before))
	assert.False(t, res.Timestamp().After(after))
}

func TestResult_MarshalJSON(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	res := taskqueue.RestoreResult(uuid.New(), "out", taskqueue.ResultStatusFailure, ts)

	buf, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded struct {
		TaskID    string `json:"taskId"`
		Output    string `json:"output"`
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(buf, &decoded))
	assert.Equal(t, res.TaskID().String(), decoded.TaskID)
	assert.Equal(t, "out", decoded.Output)
	assert.Equal(t, "FAILURE", decoded.Status)
	assert.Equal(t, "2024-01-01T12:00:00", decoded.Timestamp)
}

// Tasks with identical priorities are distinct units of work unless they
// share an identifier; ordering and identity are deliberately decoupled.
func TestTask_IdentityVersusOrdering(t *testing.T) {
	a := taskqueue.NewTask("a", 1)
	b := taskqueue.NewTask("b", 1)

	assert.Equal(t, a.Priority(), b.Priority())
	assert.NotEqual(t, a.ID(), b.ID())

	restored := taskqueue.RestoreTask(a.ID(), "a", 99, taskqueue.TaskStatusPending)
	assert.Equal(t, a.ID(), restored.ID())
	assert.NotEqual(t, a.Priority(), restored.Priority())
}

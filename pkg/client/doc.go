// Package client is a Go HTTP client for the task-queue service, covering
// queue creation, task enqueue/dequeue, result submission and retrieval,
// aggregate status polling, and the admin clear endpoint.
//
//	c := client.New("http://localhost:8080")
//	q, err := c.CreateQueue(ctx, "renders")
//	...
//	task, err := c.DequeueTask(ctx, q.ID)
//	if task == nil {
//	    // queue is empty; poll again later
//	}
package client

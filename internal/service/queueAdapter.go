package service

import (
	"context"

	"github.com/subtrackhq/subtrack/pkg/queue"
)

// QueueAdapter adapts queue.Queue to the TaskPublisher interface services use.
type QueueAdapter struct {
	queue queue.Queue
}

func NewQueueAdapter(q queue.Queue) *QueueAdapter {
	return &QueueAdapter{queue: q}
}

func (a *QueueAdapter) Publish(ctx context.Context, task *Task) error {
	if a.queue == nil {
		// No queue configured; delivery is best-effort only.
		return nil
	}

	return a.queue.Publish(ctx, &queue.Task{
		ID:         task.ID,
		Type:       task.Type,
		Data:       task.Data,
		ExecuteAt:  task.ExecuteAt,
		MaxRetries: task.MaxRetries,
	})
}

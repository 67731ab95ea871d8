package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// DLQHandler receives tasks that exhausted their retries.
type DLQHandler interface {
	HandleFailedTask(task *Task, err error)
	GetFailedTasks(ctx context.Context, limit int) ([]*FailedTask, error)
	RequeueFailedTask(ctx context.Context, taskID string, q Queue) error
}

// FailedTask wraps a dead task with its failure context.
type FailedTask struct {
	Task     *Task     `json:"task"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
	Attempts int       `json:"attempts"`
}

type DefaultDLQHandler struct {
	client *redis.Client
	dlq    string
}

func NewDefaultDLQHandler(client *redis.Client, dlq string) *DefaultDLQHandler {
	return &DefaultDLQHandler{client: client, dlq: dlq}
}

func (d *DefaultDLQHandler) HandleFailedTask(task *Task, err error) {
	failed := &FailedTask{
		Task:     task,
		Error:    err.Error(),
		FailedAt: time.Now(),
		Attempts: task.Attempts,
	}

	data, marshalErr := json.Marshal(failed)
	if marshalErr != nil {
		logrus.Errorf("Failed to marshal dead task %s: %v", task.ID, marshalErr)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Timestamp score keeps the DLQ ordered oldest-first.
	score := float64(failed.FailedAt.UnixNano()) / 1e9
	if redisErr := d.client.ZAdd(ctx, d.dlq, &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); redisErr != nil {
		logrus.Errorf("Failed to push task %s to DLQ: %v", task.ID, redisErr)
		return
	}

	logrus.WithFields(logrus.Fields{
		"task_id":  task.ID,
		"type":     task.Type,
		"attempts": task.Attempts,
	}).Warn("Task moved to dead letter queue")
}

func (d *DefaultDLQHandler) GetFailedTasks(ctx context.Context, limit int) ([]*FailedTask, error) {
	members, err := d.client.ZRange(ctx, d.dlq, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read DLQ: %w", err)
	}

	tasks := make([]*FailedTask, 0, len(members))
	for _, member := range members {
		var failed FailedTask
		if err := json.Unmarshal([]byte(member), &failed); err != nil {
			logrus.Errorf("Skipping unparseable DLQ entry: %v", err)
			continue
		}
		tasks = append(tasks, &failed)
	}
	return tasks, nil
}

func (d *DefaultDLQHandler) RequeueFailedTask(ctx context.Context, taskID string, q Queue) error {
	members, err := d.client.ZRange(ctx, d.dlq, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to read DLQ: %w", err)
	}

	for _, member := range members {
		var failed FailedTask
		if err := json.Unmarshal([]byte(member), &failed); err != nil {
			continue
		}
		if failed.Task == nil || failed.Task.ID != taskID {
			continue
		}

		failed.Task.Attempts = 0
		if err := q.Publish(ctx, failed.Task); err != nil {
			return fmt.Errorf("failed to requeue task %s: %w", taskID, err)
		}
		return d.client.ZRem(ctx, d.dlq, member).Err()
	}

	return fmt.Errorf("task %s not found in DLQ", taskID)
}

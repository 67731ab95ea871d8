package queue

import (
	"context"
	"encoding/json"
	"time"
)

const TaskTypeEmail = "email"

// Task is the unit of work carried through the redis queue. Data is an opaque
// JSON payload owned by the task type.
type Task struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Data       json.RawMessage `json:"data"`
	ExecuteAt  time.Time       `json:"execute_at"`
	MaxRetries int             `json:"max_retries"`
	Attempts   int             `json:"attempts"`
	CreatedAt  time.Time       `json:"created_at"`
}

// EmailTask is the payload for TaskTypeEmail.
type EmailTask struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Queue interface {
	Publish(ctx context.Context, task *Task) error
	Subscribe(ctx context.Context, handler func(*Task) error) error
	Close() error
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/subtrackhq/subtrack/pkg/email"

	"github.com/sirupsen/logrus"
)

// EmailTaskHandler consumes TaskTypeEmail tasks and hands them to the
// configured sender.
type EmailTaskHandler struct {
	sender  email.Sender
	timeout time.Duration
}

func NewEmailTaskHandler(sender email.Sender) *EmailTaskHandler {
	return &EmailTaskHandler{
		sender:  sender,
		timeout: 30 * time.Second,
	}
}

func (h *EmailTaskHandler) HandleTask(task *Task) error {
	switch task.Type {
	case TaskTypeEmail:
		return h.handleEmail(task)
	default:
		// Unknown types are permanent failures; retrying cannot fix them.
		return fmt.Errorf("invalid task type: %s", task.Type)
	}
}

func (h *EmailTaskHandler) handleEmail(task *Task) error {
	var payload EmailTask
	if err := json.Unmarshal(task.Data, &payload); err != nil {
		return fmt.Errorf("invalid email task payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.sender.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"task_id": task.ID,
		"to":      payload.To,
	}).Info("Email task delivered")
	return nil
}

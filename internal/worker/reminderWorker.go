package worker

import (
	"context"
	"time"

	"github.com/subtrackhq/subtrack/internal/service"

	"github.com/sirupsen/logrus"
)

// RenewalReminderWorker periodically scans upcoming renewals and fans out
// reminder notifications through the reminder service.
type RenewalReminderWorker struct {
	reminderService service.ReminderService
	interval        time.Duration
}

func NewRenewalReminderWorker(reminderService service.ReminderService, interval time.Duration) *RenewalReminderWorker {
	return &RenewalReminderWorker{
		reminderService: reminderService,
		interval:        interval,
	}
}

func (w *RenewalReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Renewal reminder worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Renewal reminder worker stopped")
			return
		case <-ticker.C:
			w.generateReminders(ctx)
		}
	}
}

func (w *RenewalReminderWorker) generateReminders(ctx context.Context) {
	logrus.Info("Starting renewal reminder pass")

	if err := w.reminderService.GenerateRenewalReminders(ctx); err != nil {
		logrus.Errorf("Failed to generate renewal reminders: %v", err)
		return
	}

	logrus.Info("Renewal reminder pass completed")
}

func (w *RenewalReminderWorker) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"worker_type": "renewal_reminder",
		"interval":    w.interval.String(),
		"status":      "running",
	}
}

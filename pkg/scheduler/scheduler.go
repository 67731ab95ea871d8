package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is a unit of periodic work run by the scheduler.
type Job func(ctx context.Context) error

type Scheduler struct {
	name     string
	job      Job
	interval time.Duration
}

func NewScheduler(name string, job Job, interval time.Duration) *Scheduler {
	return &Scheduler{
		name:     name,
		job:      job,
		interval: interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logrus.Infof("Scheduler %s started", s.name)

	for {
		select {
		case <-ticker.C:
			if err := s.job(ctx); err != nil {
				logrus.Errorf("Scheduler %s run failed: %v", s.name, err)
			}
		case <-ctx.Done():
			logrus.Infof("Scheduler %s stopped", s.name)
			return
		}
	}
}

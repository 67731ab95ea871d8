package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/subtrackhq/subtrack/internal/database/postgres"
	cache "github.com/subtrackhq/subtrack/internal/database/redis"
	"github.com/subtrackhq/subtrack/internal/entity"

	"github.com/sirupsen/logrus"
)

// reminderThresholds are the day counts a reminder can fire at, matched
// against each owner's preference flags.
var reminderThresholds = []int{30, 7, 1}

type reminderService struct {
	subRepo          repository.SubscriptionRepository
	prefsRepo        repository.PreferencesRepository
	notificationsSvc NotificationService
	cache            *cache.NotificationCache
}

func NewReminderService(
	subRepo repository.SubscriptionRepository,
	prefsRepo repository.PreferencesRepository,
	notificationsSvc NotificationService,
	notificationCache *cache.NotificationCache,
) ReminderService {
	return &reminderService{
		subRepo:          subRepo,
		prefsRepo:        prefsRepo,
		notificationsSvc: notificationsSvc,
		cache:            notificationCache,
	}
}

// GenerateRenewalReminders inserts renewal_reminder notifications for
// subscriptions renewing 30, 7 or 1 days out. One reminder per subscription
// per threshold per day; the redis SETNX dedup absorbs overlapping sweeps.
func (s *reminderService) GenerateRenewalReminders(ctx context.Context) error {
	now := time.Now()
	subs, err := s.subRepo.GetRenewingBetween(ctx, now, now.AddDate(0, 0, 31))
	if err != nil {
		return fmt.Errorf("failed to load renewing subscriptions: %w", err)
	}

	sent := 0
	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		days := sub.DaysUntilRenewal(now)
		if !matchesThreshold(days) {
			continue
		}

		prefs, err := s.prefsRepo.Get(ctx, sub.UserID)
		if err != nil {
			logrus.Errorf("Failed to load preferences for user %d: %v", sub.UserID, err)
			continue
		}
		if prefs == nil {
			prefs = entity.DefaultPreferences(sub.UserID)
		}
		if !prefs.WantsReminder(days) {
			continue
		}

		if s.cache != nil {
			first, err := s.cache.MarkReminderSent(ctx, sub.ID, days, now.Format("2006-01-02"))
			if err != nil {
				logrus.Errorf("Reminder dedup check failed for subscription %d: %v", sub.ID, err)
				continue
			}
			if !first {
				continue
			}
		}

		subID := sub.ID
		if err := s.notificationsSvc.Notify(ctx, &entity.Notification{
			UserID:         sub.UserID,
			Type:           entity.NotificationRenewalReminder,
			Title:          sub.Name + " renews soon",
			Message:        renewalMessage(sub.Name, days),
			SubscriptionID: &subID,
		}); err != nil {
			logrus.Errorf("Failed to insert reminder for subscription %d: %v", sub.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		logrus.Infof("Renewal reminder sweep inserted %d notifications", sent)
	}
	return nil
}

// GenerateOverdueAlerts flags subscriptions whose renewal date has passed.
func (s *reminderService) GenerateOverdueAlerts(ctx context.Context) error {
	now := time.Now()
	overdue, err := s.subRepo.GetOverdue(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to load overdue subscriptions: %w", err)
	}

	for _, sub := range overdue {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if s.cache != nil {
			// Threshold 0 namespaces overdue alerts apart from reminders.
			first, err := s.cache.MarkReminderSent(ctx, sub.ID, 0, now.Format("2006-01-02"))
			if err != nil || !first {
				continue
			}
		}

		subID := sub.ID
		if err := s.notificationsSvc.Notify(ctx, &entity.Notification{
			UserID:         sub.UserID,
			Type:           entity.NotificationOverduePayment,
			Title:          sub.Name + " payment overdue",
			Message:        fmt.Sprintf("The renewal for %s was due on %s.", sub.Name, sub.NextRenewal.Format("Jan 2, 2006")),
			SubscriptionID: &subID,
		}); err != nil {
			logrus.Errorf("Failed to insert overdue alert for subscription %d: %v", sub.ID, err)
		}
	}
	return nil
}

func matchesThreshold(days int) bool {
	for _, threshold := range reminderThresholds {
		if days == threshold {
			return true
		}
	}
	return false
}

// renewalMessage wording feeds the urgency heuristic: the 1-day copy says
// TOMORROW so the bell treats it as urgent.
func renewalMessage(name string, days int) string {
	switch days {
	case 1:
		return fmt.Sprintf("%s renews TOMORROW.", name)
	default:
		return fmt.Sprintf("%s renews in %d days.", name, days)
	}
}

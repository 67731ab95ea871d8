package service

import (
	"context"
	"fmt"
	"strconv"

	repository "github.com/subtrackhq/subtrack/internal/database/postgres"
	"github.com/subtrackhq/subtrack/internal/entity"

	"github.com/sirupsen/logrus"
)

type billingService struct {
	planRepo         repository.PlanRepository
	notificationsSvc NotificationService
}

func NewBillingService(planRepo repository.PlanRepository, notificationsSvc NotificationService) BillingService {
	return &billingService{
		planRepo:         planRepo,
		notificationsSvc: notificationsSvc,
	}
}

// ProcessWebhook dispatches a Paddle lifecycle event. Events without the
// userId we stamped into custom_data are logged and skipped, not errored:
// the provider would otherwise retry payloads that can never succeed.
//
// There is no idempotency key. A redelivered transaction.completed reapplies
// the same plan write and inserts another notification; Paddle delivery is
// at-least-once and this handler accepts that.
func (s *billingService) ProcessWebhook(ctx context.Context, event *entity.WebhookEvent) error {
	eventType := entity.ParseWebhookEventType(event.EventType)

	entry := logrus.WithFields(logrus.Fields{
		"event_type": event.EventType,
		"event_id":   event.Data.ID,
	})

	switch eventType {
	case entity.WebhookTransactionCompleted:
		return s.handleTransactionCompleted(ctx, entry, event)

	case entity.WebhookSubscriptionCreated:
		entry.WithField("customer_id", event.Data.CustomerID).Info("Subscription created")
		return nil

	case entity.WebhookSubscriptionUpdated:
		entry.WithField("status", event.Data.Status).Info("Subscription updated")
		return nil

	case entity.WebhookSubscriptionCanceled:
		return s.handleSubscriptionCanceled(ctx, entry, event)

	case entity.WebhookEventUnknown:
		entry.Info("Ignoring unrecognized webhook event")
		return nil
	}

	return nil
}

func (s *billingService) handleTransactionCompleted(ctx context.Context, entry *logrus.Entry, event *entity.WebhookEvent) error {
	userID, ok := webhookUserID(entry, event)
	if !ok {
		return nil
	}

	planType := entity.PlanType(event.Data.CustomData.PlanType)
	if planType == "" {
		planType = entity.PlanPro
	}

	plan := entity.PlanFor(userID, planType)
	if err := s.planRepo.Upsert(ctx, plan); err != nil {
		return fmt.Errorf("failed to upsert plan for user %d: %w", userID, err)
	}

	if err := s.notificationsSvc.Notify(ctx, &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationSystem,
		Title:   "Welcome to SubTrack " + titleCasePlan(plan.PlanType),
		Message: fmt.Sprintf("Your payment was successful and your account has been upgraded to the %s plan.", plan.PlanType),
	}); err != nil {
		return fmt.Errorf("failed to insert upgrade notification: %w", err)
	}

	entry.WithFields(logrus.Fields{
		"user_id":   userID,
		"plan_type": plan.PlanType,
	}).Info("Plan upgraded")
	return nil
}

func (s *billingService) handleSubscriptionCanceled(ctx context.Context, entry *logrus.Entry, event *entity.WebhookEvent) error {
	userID, ok := webhookUserID(entry, event)
	if !ok {
		return nil
	}

	plan := entity.PlanFor(userID, entity.PlanFree)
	if err := s.planRepo.Upsert(ctx, plan); err != nil {
		return fmt.Errorf("failed to downgrade plan for user %d: %w", userID, err)
	}

	if err := s.notificationsSvc.Notify(ctx, &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationSystem,
		Title:   "Subscription canceled",
		Message: "Your Pro subscription has been canceled and your account moved to the free plan.",
	}); err != nil {
		return fmt.Errorf("failed to insert cancellation notification: %w", err)
	}

	entry.WithField("user_id", userID).Info("Plan downgraded to free")
	return nil
}

// webhookUserID extracts the user id from custom_data; false means the event
// must be skipped (logged, answered 200 upstream).
func webhookUserID(entry *logrus.Entry, event *entity.WebhookEvent) (int64, bool) {
	raw := event.Data.CustomData.UserID
	if raw == "" {
		entry.Warn("Webhook event has no userId in custom_data, skipping")
		return 0, false
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		entry.Warnf("Webhook event carries unparseable userId %q, skipping", raw)
		return 0, false
	}
	return userID, true
}

func titleCasePlan(planType entity.PlanType) string {
	switch planType {
	case entity.PlanPro:
		return "Pro"
	default:
		return "Free"
	}
}

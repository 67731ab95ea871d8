package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/subtrackhq/subtrack/internal/database/postgres"
	"github.com/subtrackhq/subtrack/internal/entity"
)

type subscriptionService struct {
	subRepo          repository.SubscriptionRepository
	planRepo         repository.PlanRepository
	notificationsSvc NotificationService
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	planRepo repository.PlanRepository,
	notificationsSvc NotificationService,
) SubscriptionService {
	return &subscriptionService{
		subRepo:          subRepo,
		planRepo:         planRepo,
		notificationsSvc: notificationsSvc,
	}
}

func (s *subscriptionService) Create(ctx context.Context, userID int64, req *CreateSubscriptionRequest) (*entity.Subscription, error) {
	plan, err := s.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.subRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	if count >= plan.SubscriptionLimit {
		if err := s.notificationsSvc.Notify(ctx, &entity.Notification{
			UserID:  userID,
			Type:    entity.NotificationPlanLimit,
			Title:   "Subscription limit reached",
			Message: fmt.Sprintf("Your %s plan allows up to %d subscriptions. Upgrade to Pro to track more.", plan.PlanType, plan.SubscriptionLimit),
		}); err != nil {
			return nil, fmt.Errorf("failed to record plan limit notification: %w", err)
		}
		return nil, entity.ErrPlanLimitReached
	}

	cycle := entity.BillingCycle(req.Cycle)
	if cycle != entity.CycleYearly {
		cycle = entity.CycleMonthly
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	sub := &entity.Subscription{
		UserID:      userID,
		Name:        req.Name,
		PriceCents:  req.PriceCents,
		Currency:    currency,
		Cycle:       cycle,
		NextRenewal: req.NextRenewal,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

func (s *subscriptionService) List(ctx context.Context, userID int64) ([]*entity.Subscription, error) {
	subs, err := s.subRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *subscriptionService) Update(ctx context.Context, userID, id int64, req *UpdateSubscriptionRequest) (*entity.Subscription, error) {
	existing, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, entity.ErrForbidden
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.PriceCents != nil {
		existing.PriceCents = *req.PriceCents
	}
	if req.Currency != nil {
		existing.Currency = *req.Currency
	}
	if req.Cycle != nil {
		existing.Cycle = entity.BillingCycle(*req.Cycle)
	}
	if req.NextRenewal != nil {
		existing.NextRenewal = *req.NextRenewal
	}
	existing.UpdatedAt = time.Now()

	if err := s.subRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return existing, nil
}

func (s *subscriptionService) Delete(ctx context.Context, userID, id int64) error {
	existing, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return entity.ErrForbidden
	}
	return s.subRepo.Delete(ctx, id)
}

// GetPlan returns the stored plan row or the free profile when the webhook
// has never written one. The default is not persisted; only the billing flow
// writes plan rows.
func (s *subscriptionService) GetPlan(ctx context.Context, userID int64) (*entity.UserPlan, error) {
	plan, err := s.planRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		plan = entity.PlanFor(userID, entity.PlanFree)
	}
	return plan, nil
}

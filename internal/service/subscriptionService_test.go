package service

import (
	"context"
	"testing"
	"time"

	"github.com/subtrackhq/subtrack/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRequest(name string) *CreateSubscriptionRequest {
	return &CreateSubscriptionRequest{
		Name:        name,
		PriceCents:  1299,
		NextRenewal: time.Now().AddDate(0, 1, 0),
	}
}

func TestCreateSubscriptionDefaults(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(subRepo, newFakePlanRepo(), &recordingNotifier{})

	sub, err := svc.Create(context.Background(), 42, createRequest("Netflix"))
	require.NoError(t, err)

	assert.Equal(t, int64(42), sub.UserID)
	assert.Equal(t, "Netflix", sub.Name)
	assert.Equal(t, entity.CycleMonthly, sub.Cycle)
	assert.Equal(t, "USD", sub.Currency)
	assert.NotZero(t, sub.ID)
}

func TestCreateSubscriptionFreePlanLimit(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	notifier := &recordingNotifier{}
	svc := NewSubscriptionService(subRepo, newFakePlanRepo(), notifier)

	for i := 0; i < entity.FreeSubscriptionLimit; i++ {
		_, err := svc.Create(context.Background(), 42, createRequest("Service"))
		require.NoError(t, err)
	}

	sub, err := svc.Create(context.Background(), 42, createRequest("One too many"))
	assert.ErrorIs(t, err, entity.ErrPlanLimitReached)
	assert.Nil(t, sub)

	count, _ := subRepo.CountByUser(context.Background(), 42)
	assert.Equal(t, entity.FreeSubscriptionLimit, count)

	// The rejection leaves a plan_limit notification behind.
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, entity.NotificationPlanLimit, notifier.notified[0].Type)
}

func TestCreateSubscriptionProPlanBypassesFreeLimit(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	planRepo := newFakePlanRepo()
	planRepo.plans[42] = entity.PlanFor(42, entity.PlanPro)
	svc := NewSubscriptionService(subRepo, planRepo, &recordingNotifier{})

	for i := 0; i < entity.FreeSubscriptionLimit+3; i++ {
		_, err := svc.Create(context.Background(), 42, createRequest("Service"))
		require.NoError(t, err)
	}
}

func TestUpdateSubscriptionOwnership(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(subRepo, newFakePlanRepo(), &recordingNotifier{})

	sub, err := svc.Create(context.Background(), 42, createRequest("Netflix"))
	require.NoError(t, err)

	newName := "Netflix Premium"
	updated, err := svc.Update(context.Background(), 42, sub.ID, &UpdateSubscriptionRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Netflix Premium", updated.Name)

	_, err = svc.Update(context.Background(), 99, sub.ID, &UpdateSubscriptionRequest{Name: &newName})
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = svc.Update(context.Background(), 42, 12345, &UpdateSubscriptionRequest{Name: &newName})
	assert.ErrorIs(t, err, entity.ErrSubscriptionNotFound)
}

func TestDeleteSubscription(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(subRepo, newFakePlanRepo(), &recordingNotifier{})

	sub, err := svc.Create(context.Background(), 42, createRequest("Netflix"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), 99, sub.ID), entity.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), 42, sub.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), 42, sub.ID), entity.ErrSubscriptionNotFound)
}

func TestGetPlanFallsBackToFree(t *testing.T) {
	planRepo := newFakePlanRepo()
	svc := NewSubscriptionService(newFakeSubscriptionRepo(), planRepo, &recordingNotifier{})

	plan, err := svc.GetPlan(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanFree, plan.PlanType)
	assert.Equal(t, entity.FreeSubscriptionLimit, plan.SubscriptionLimit)

	// The fallback is not persisted; only billing writes plan rows.
	assert.Empty(t, planRepo.plans)
}

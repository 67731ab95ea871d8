package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanFor(t *testing.T) {
	tests := []struct {
		name          string
		planType      PlanType
		expectedType  PlanType
		expectedLimit int
		expectedFlags bool
	}{
		{
			name:          "pro plan gets full entitlements",
			planType:      PlanPro,
			expectedType:  PlanPro,
			expectedLimit: ProSubscriptionLimit,
			expectedFlags: true,
		},
		{
			name:          "free plan gets base entitlements",
			planType:      PlanFree,
			expectedType:  PlanFree,
			expectedLimit: FreeSubscriptionLimit,
			expectedFlags: false,
		},
		{
			name:          "unknown tier falls back to free",
			planType:      PlanType("enterprise"),
			expectedType:  PlanFree,
			expectedLimit: FreeSubscriptionLimit,
			expectedFlags: false,
		},
		{
			name:          "empty tier falls back to free",
			planType:      PlanType(""),
			expectedType:  PlanFree,
			expectedLimit: FreeSubscriptionLimit,
			expectedFlags: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanFor(42, tt.planType)

			assert.Equal(t, int64(42), plan.UserID)
			assert.Equal(t, tt.expectedType, plan.PlanType)
			assert.Equal(t, tt.expectedLimit, plan.SubscriptionLimit)
			assert.Equal(t, tt.expectedFlags, plan.Analytics)
			assert.Equal(t, tt.expectedFlags, plan.Reports)
			assert.Equal(t, tt.expectedFlags, plan.TeamFeatures)
			assert.Equal(t, tt.expectedFlags, plan.APIAccess)
			assert.False(t, plan.UpdatedAt.IsZero())
		})
	}
}

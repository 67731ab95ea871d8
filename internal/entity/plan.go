package entity

import "time"

type PlanType string

const (
	PlanFree PlanType = "free"
	PlanPro  PlanType = "pro"
)

const (
	FreeSubscriptionLimit = 5
	ProSubscriptionLimit  = 999999
)

type UserPlan struct {
	UserID            int64     `json:"user_id" db:"user_id"`
	PlanType          PlanType  `json:"plan_type" db:"plan_type"`
	SubscriptionLimit int       `json:"subscription_limit" db:"subscription_limit"`
	Analytics         bool      `json:"analytics" db:"analytics"`
	Reports           bool      `json:"reports" db:"reports"`
	TeamFeatures      bool      `json:"team_features" db:"team_features"`
	APIAccess         bool      `json:"api_access" db:"api_access"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// PlanFor returns the canonical plan row for a tier. Unknown tiers fall back
// to the free profile so a bad provider payload can never widen entitlements.
func PlanFor(userID int64, planType PlanType) *UserPlan {
	plan := &UserPlan{
		UserID:            userID,
		PlanType:          PlanFree,
		SubscriptionLimit: FreeSubscriptionLimit,
		UpdatedAt:         time.Now(),
	}

	if planType == PlanPro {
		plan.PlanType = PlanPro
		plan.SubscriptionLimit = ProSubscriptionLimit
		plan.Analytics = true
		plan.Reports = true
		plan.TeamFeatures = true
		plan.APIAccess = true
	}

	return plan
}

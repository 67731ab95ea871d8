package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/subtrackhq/subtrack/internal/entity"
)

type planRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Get(ctx context.Context, userID int64) (*entity.UserPlan, error) {
	query := `
		SELECT user_id, plan_type, subscription_limit, analytics, reports, team_features, api_access, updated_at
		FROM user_plans
		WHERE user_id = $1
	`

	var plan entity.UserPlan
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&plan.UserID,
		&plan.PlanType,
		&plan.SubscriptionLimit,
		&plan.Analytics,
		&plan.Reports,
		&plan.TeamFeatures,
		&plan.APIAccess,
		&plan.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *planRepository) Upsert(ctx context.Context, plan *entity.UserPlan) error {
	query := `
		INSERT INTO user_plans (user_id, plan_type, subscription_limit, analytics, reports, team_features, api_access, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			plan_type = EXCLUDED.plan_type,
			subscription_limit = EXCLUDED.subscription_limit,
			analytics = EXCLUDED.analytics,
			reports = EXCLUDED.reports,
			team_features = EXCLUDED.team_features,
			api_access = EXCLUDED.api_access,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		plan.UserID,
		plan.PlanType,
		plan.SubscriptionLimit,
		plan.Analytics,
		plan.Reports,
		plan.TeamFeatures,
		plan.APIAccess,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user plan: %w", err)
	}

	return nil
}

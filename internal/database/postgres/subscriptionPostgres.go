package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/subtrackhq/subtrack/internal/entity"
)

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, name, price_cents, currency, billing_cycle, next_renewal, created_at, updated_at`

func (r *subscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, name, price_cents, currency, billing_cycle, next_renewal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		sub.UserID,
		sub.Name,
		sub.PriceCents,
		sub.Currency,
		sub.Cycle,
		sub.NextRenewal,
		sub.CreatedAt,
		sub.UpdatedAt,
	).Scan(&sub.ID)
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	sub, err := scanSubscription(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY next_renewal ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *entity.Subscription) error {
	query := `
		UPDATE subscriptions
		SET name = $1, price_cents = $2, currency = $3, billing_cycle = $4, next_renewal = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		sub.Name,
		sub.PriceCents,
		sub.Currency,
		sub.Cycle,
		sub.NextRenewal,
		sub.UpdatedAt,
		sub.ID,
		sub.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrSubscriptionNotFound
	}

	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrSubscriptionNotFound
	}

	return nil
}

func (r *subscriptionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

func (r *subscriptionRepository) GetRenewingBetween(ctx context.Context, from, to time.Time) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE next_renewal >= $1 AND next_renewal < $2
		ORDER BY next_renewal ASC
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query renewing subscriptions: %w", err)
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

func (r *subscriptionRepository) GetOverdue(ctx context.Context, before time.Time) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE next_renewal < $1
		ORDER BY next_renewal ASC
	`

	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue subscriptions: %w", err)
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscription(row rowScanner) (*entity.Subscription, error) {
	var sub entity.Subscription
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Name,
		&sub.PriceCents,
		&sub.Currency,
		&sub.Cycle,
		&sub.NextRenewal,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func collectSubscriptions(rows *sql.Rows) ([]*entity.Subscription, error) {
	var subs []*entity.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}
	return subs, nil
}

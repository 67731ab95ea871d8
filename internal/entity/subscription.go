package entity

import (
	"time"
)

type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Subscription is a recurring service the user tracks (Netflix, hosting, ...),
// not the user's own paid plan with us.
type Subscription struct {
	ID          int64        `json:"id" db:"id"`
	UserID      int64        `json:"user_id" db:"user_id"`
	Name        string       `json:"name" db:"name"`
	PriceCents  int64        `json:"price_cents" db:"price_cents"`
	Currency    string       `json:"currency" db:"currency"`
	Cycle       BillingCycle `json:"billing_cycle" db:"billing_cycle"`
	NextRenewal time.Time    `json:"next_renewal" db:"next_renewal"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// DaysUntilRenewal counts whole days from now until the renewal date,
// negative once the renewal is overdue.
func (s *Subscription) DaysUntilRenewal(now time.Time) int {
	renewal := time.Date(s.NextRenewal.Year(), s.NextRenewal.Month(), s.NextRenewal.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(renewal.Sub(today).Hours() / 24)
}

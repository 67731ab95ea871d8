package repository

import (
	"context"
	"time"

	"github.com/subtrackhq/subtrack/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
}

type PlanRepository interface {
	// Get returns nil, nil when the user has no plan row yet.
	Get(ctx context.Context, userID int64) (*entity.UserPlan, error)
	Upsert(ctx context.Context, plan *entity.UserPlan) error
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByID(ctx context.Context, id int64) (*entity.Subscription, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Subscription, error)
	Update(ctx context.Context, sub *entity.Subscription) error
	Delete(ctx context.Context, id int64) error
	CountByUser(ctx context.Context, userID int64) (int, error)

	// Reminder sweep queries
	GetRenewingBetween(ctx context.Context, from, to time.Time) ([]*entity.Subscription, error)
	GetOverdue(ctx context.Context, before time.Time) ([]*entity.Subscription, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByUserID(ctx context.Context, userID int64, limit int) ([]*entity.Notification, error)
	GetUnreadByUserID(ctx context.Context, userID int64) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID int64, id string) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, userID int64, id string) error
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type PreferencesRepository interface {
	// Get returns nil, nil when the user has no preferences row yet.
	Get(ctx context.Context, userID int64) (*entity.NotificationPreferences, error)
	Upsert(ctx context.Context, prefs *entity.NotificationPreferences) error
}

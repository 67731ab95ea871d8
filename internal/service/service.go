package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/subtrackhq/subtrack/internal/entity"
)

// AuthService covers registration, login and the reset-form probes. Google
// sign-in only goes as far as building the consent redirect; the callback is
// handled by the identity provider.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	RequestPasswordReset(ctx context.Context, email string) error
	GoogleAuthURL(state string) string
	ParseToken(token string) (int64, error)
}

// NotificationService is the feed behind the bell dropdown.
type NotificationService interface {
	List(ctx context.Context, userID int64, limit int) ([]*entity.Notification, error)
	CheckForNew(ctx context.Context, userID int64, force bool) (*FeedSnapshot, error)
	MarkAsRead(ctx context.Context, userID int64, id string) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, userID int64, id string) error
	UnreadCount(ctx context.Context, userID int64, force bool) (*UnreadBadge, error)
	Urgent(ctx context.Context, userID int64) ([]*entity.Notification, error)

	// Notify inserts a notification and fans out email when the owner opted in.
	Notify(ctx context.Context, n *entity.Notification) error
}

// ReminderService generates renewal reminders and overdue alerts; driven by
// the background worker and scheduler, never by requests.
type ReminderService interface {
	GenerateRenewalReminders(ctx context.Context) error
	GenerateOverdueAlerts(ctx context.Context) error
}

type PreferencesService interface {
	Load(ctx context.Context, userID int64) (*entity.NotificationPreferences, error)
	Save(ctx context.Context, userID int64, req *SavePreferencesRequest) (*entity.NotificationPreferences, error)
}

type SubscriptionService interface {
	Create(ctx context.Context, userID int64, req *CreateSubscriptionRequest) (*entity.Subscription, error)
	List(ctx context.Context, userID int64) ([]*entity.Subscription, error)
	Update(ctx context.Context, userID, id int64, req *UpdateSubscriptionRequest) (*entity.Subscription, error)
	Delete(ctx context.Context, userID, id int64) error
	GetPlan(ctx context.Context, userID int64) (*entity.UserPlan, error)
}

// BillingService applies Paddle lifecycle events to plan state.
type BillingService interface {
	ProcessWebhook(ctx context.Context, event *entity.WebhookEvent) error
}

// TaskPublisher decouples services from the queue implementation.
type TaskPublisher interface {
	Publish(ctx context.Context, task *Task) error
}

// Task mirrors the queue task shape without importing pkg/queue here.
type Task struct {
	ID         string
	Type       string
	Data       json.RawMessage
	ExecuteAt  time.Time
	MaxRetries int
}

// Request/response types

type RegisterRequest struct {
	Email           string `json:"email" binding:"required"`
	Name            string `json:"name" binding:"required,min=1,max=255"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

type SavePreferencesRequest struct {
	EmailEnabled   bool   `json:"email_enabled"`
	Reminder30Days bool   `json:"reminder_30_days"`
	Reminder7Days  bool   `json:"reminder_7_days"`
	Reminder1Day   bool   `json:"reminder_1_day"`
	EmailTime      string `json:"email_time" binding:"required"`
}

type CreateSubscriptionRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=255"`
	PriceCents  int64     `json:"price_cents" binding:"min=0"`
	Currency    string    `json:"currency"`
	Cycle       string    `json:"billing_cycle"`
	NextRenewal time.Time `json:"next_renewal" binding:"required"`
}

type UpdateSubscriptionRequest struct {
	Name        *string    `json:"name,omitempty"`
	PriceCents  *int64     `json:"price_cents,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
	Cycle       *string    `json:"billing_cycle,omitempty"`
	NextRenewal *time.Time `json:"next_renewal,omitempty"`
}

// FeedSnapshot is what the bell dropdown polls for.
type FeedSnapshot struct {
	Notifications []*entity.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
	Badge         string                 `json:"badge"`
}

// UnreadBadge pairs the raw unread count with its display form ("9+" cap).
type UnreadBadge struct {
	Count int    `json:"count"`
	Badge string `json:"badge"`
}

package entity

import (
	"strconv"
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationOverduePayment  NotificationType = "overdue_payment"
	NotificationRenewalReminder NotificationType = "renewal_reminder"
	NotificationPlanLimit       NotificationType = "plan_limit"
	NotificationSystem          NotificationType = "system"
	NotificationOther           NotificationType = "other"
)

type Notification struct {
	ID             string           `json:"id" db:"id"`
	UserID         int64            `json:"user_id" db:"user_id"`
	Type           NotificationType `json:"type" db:"type"`
	Title          string           `json:"title" db:"title"`
	Message        string           `json:"message" db:"message"`
	IsRead         bool             `json:"is_read" db:"is_read"`
	SubscriptionID *int64           `json:"subscription_id,omitempty" db:"subscription_id"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}

// urgentMarkers are matched case-sensitively against reminder copy. The feed
// copy and this list move together, so keep them in sync with the reminder
// worker's message templates.
var urgentMarkers = []string{"1 day", "2 day", "TOMORROW", "TODAY"}

// IsUrgent reports whether the notification needs immediate attention.
// Overdue payments always qualify; renewal reminders qualify only when the
// message says the renewal is at most two days out.
func (n *Notification) IsUrgent() bool {
	if n.Type == NotificationOverduePayment {
		return true
	}
	if n.Type != NotificationRenewalReminder {
		return false
	}
	for _, marker := range urgentMarkers {
		if strings.Contains(n.Message, marker) {
			return true
		}
	}
	return false
}

// BadgeValue renders an unread count for the bell badge, capped at "9+".
func BadgeValue(unread int) string {
	if unread > 9 {
		return "9+"
	}
	if unread < 0 {
		unread = 0
	}
	return strconv.Itoa(unread)
}

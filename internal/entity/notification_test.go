package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationIsUrgent(t *testing.T) {
	tests := []struct {
		name     string
		notType  NotificationType
		message  string
		expected bool
	}{
		{
			name:     "overdue payment is always urgent",
			notType:  NotificationOverduePayment,
			message:  "Netflix payment was due last week",
			expected: true,
		},
		{
			name:     "overdue payment urgent even with empty message",
			notType:  NotificationOverduePayment,
			message:  "",
			expected: true,
		},
		{
			name:     "reminder renewing tomorrow is urgent",
			notType:  NotificationRenewalReminder,
			message:  "Spotify renews TOMORROW.",
			expected: true,
		},
		{
			name:     "reminder renewing today is urgent",
			notType:  NotificationRenewalReminder,
			message:  "Spotify renews TODAY.",
			expected: true,
		},
		{
			name:     "reminder in 1 day is urgent",
			notType:  NotificationRenewalReminder,
			message:  "Renews in 1 day.",
			expected: true,
		},
		{
			name:     "reminder in 2 days is urgent",
			notType:  NotificationRenewalReminder,
			message:  "Renews in 2 days.",
			expected: true,
		},
		{
			name:     "reminder in 5 days is not urgent",
			notType:  NotificationRenewalReminder,
			message:  "Netflix renews in 5 days.",
			expected: false,
		},
		{
			name:     "reminder in 30 days is not urgent",
			notType:  NotificationRenewalReminder,
			message:  "Netflix renews in 30 days.",
			expected: false,
		},
		{
			name:     "marker match is case sensitive",
			notType:  NotificationRenewalReminder,
			message:  "Netflix renews tomorrow.",
			expected: false,
		},
		{
			name:     "system notification with urgent wording is not urgent",
			notType:  NotificationSystem,
			message:  "Your trial ends TOMORROW.",
			expected: false,
		},
		{
			name:     "plan limit notification is not urgent",
			notType:  NotificationPlanLimit,
			message:  "You reached the free plan limit.",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Notification{Type: tt.notType, Message: tt.message}
			assert.Equal(t, tt.expected, n.IsUrgent())
		})
	}
}

func TestBadgeValue(t *testing.T) {
	tests := []struct {
		name     string
		unread   int
		expected string
	}{
		{name: "zero unread", unread: 0, expected: "0"},
		{name: "single unread", unread: 1, expected: "1"},
		{name: "nine unread stays exact", unread: 9, expected: "9"},
		{name: "ten unread is capped", unread: 10, expected: "9+"},
		{name: "large count is capped", unread: 250, expected: "9+"},
		{name: "negative count clamps to zero", unread: -3, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BadgeValue(tt.unread))
		})
	}
}

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences(7)

	assert.Equal(t, int64(7), prefs.UserID)
	assert.True(t, prefs.EmailEnabled)
	assert.True(t, prefs.Reminder30Days)
	assert.True(t, prefs.Reminder7Days)
	assert.True(t, prefs.Reminder1Day)
	assert.Equal(t, "09:00", prefs.EmailTime)
}

func TestWantsReminder(t *testing.T) {
	prefs := &NotificationPreferences{
		Reminder30Days: true,
		Reminder7Days:  false,
		Reminder1Day:   true,
	}

	tests := []struct {
		name     string
		days     int
		expected bool
	}{
		{name: "30 day threshold follows flag", days: 30, expected: true},
		{name: "7 day threshold follows flag", days: 7, expected: false},
		{name: "1 day threshold follows flag", days: 1, expected: true},
		{name: "non-threshold day count is never wanted", days: 14, expected: false},
		{name: "zero days is never wanted", days: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, prefs.WantsReminder(tt.days))
		})
	}
}

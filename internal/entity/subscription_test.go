package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntilRenewal(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		renewal  time.Time
		expected int
	}{
		{
			name:     "renewal a month out",
			renewal:  time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC),
			expected: 30,
		},
		{
			name:     "renewal in a week",
			renewal:  time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC),
			expected: 7,
		},
		{
			name:     "renewal tomorrow regardless of time of day",
			renewal:  time.Date(2026, time.March, 11, 23, 59, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "renewal today",
			renewal:  time.Date(2026, time.March, 10, 1, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "overdue renewal is negative",
			renewal:  time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC),
			expected: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Subscription{NextRenewal: tt.renewal}
			assert.Equal(t, tt.expected, sub.DaysUntilRenewal(now))
		})
	}
}

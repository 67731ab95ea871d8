package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailTimeRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		presented string
		stored    string
	}{
		{name: "morning time", presented: "09:00", stored: "09:00:00"},
		{name: "evening time", presented: "21:30", stored: "21:30:00"},
		{name: "midnight", presented: "00:00", stored: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stored, StoredEmailTime(tt.presented))
			assert.Equal(t, tt.presented, presentEmailTime(tt.stored))
		})
	}
}

func TestStoredEmailTimePassesThroughSeconds(t *testing.T) {
	assert.Equal(t, "09:00:00", StoredEmailTime("09:00:00"))
}

func TestPresentEmailTimeLeavesShortValues(t *testing.T) {
	assert.Equal(t, "09:00", presentEmailTime("09:00"))
}

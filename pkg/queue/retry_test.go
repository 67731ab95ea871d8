package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	manager := NewRetryManager(3, time.Second)

	tests := []struct {
		name     string
		attempts int
		maxRetry int
		err      error
		expected bool
	}{
		{
			name:     "retryable error with attempts left",
			attempts: 1,
			maxRetry: 3,
			err:      errors.New("connection refused"),
			expected: true,
		},
		{
			name:     "attempts exhausted",
			attempts: 3,
			maxRetry: 3,
			err:      errors.New("connection refused"),
			expected: false,
		},
		{
			name:     "invalid task type is permanent",
			attempts: 0,
			maxRetry: 3,
			err:      errors.New("invalid task type: bogus"),
			expected: false,
		},
		{
			name:     "not found is permanent",
			attempts: 0,
			maxRetry: 3,
			err:      errors.New("user not found"),
			expected: false,
		},
		{
			name:     "unauthorized is permanent",
			attempts: 0,
			maxRetry: 3,
			err:      errors.New("unauthorized sender"),
			expected: false,
		},
		{
			name:     "nil error never retries",
			attempts: 0,
			maxRetry: 3,
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Attempts: tt.attempts, MaxRetries: tt.maxRetry}
			retry, delay := manager.ShouldRetry(task, tt.err)

			assert.Equal(t, tt.expected, retry)
			if retry {
				assert.Greater(t, delay, time.Duration(0))
			}
		})
	}
}

func TestCalculateBackoffGrowsAndCaps(t *testing.T) {
	base := time.Second
	manager := NewRetryManager(10, base)

	for attempt := 0; attempt <= 10; attempt++ {
		backoff := manager.calculateBackoff(attempt)
		assert.Greater(t, backoff, time.Duration(0), "attempt %d", attempt)
		assert.LessOrEqual(t, backoff, base*16, "attempt %d", attempt)
	}
}

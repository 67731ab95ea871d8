package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// NotificationCache keeps per-user unread counts and reminder dedup keys in
// redis so the bell badge does not hit postgres on every poll.
type NotificationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNotificationCache(client *redis.Client, ttl time.Duration) *NotificationCache {
	return &NotificationCache{
		client: client,
		ttl:    ttl,
	}
}

func unreadKey(userID int64) string {
	return fmt.Sprintf("unread_count:%d", userID)
}

// GetUnreadCount returns the cached count and whether the cache held one.
func (c *NotificationCache) GetUnreadCount(ctx context.Context, userID int64) (int, bool) {
	value, err := c.client.Get(ctx, unreadKey(userID)).Result()
	if err != nil {
		return 0, false
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *NotificationCache) SetUnreadCount(ctx context.Context, userID int64, count int) error {
	return c.client.Set(ctx, unreadKey(userID), strconv.Itoa(count), c.ttl).Err()
}

// InvalidateUnreadCount drops the cached count after any feed mutation so the
// next poll recomputes it.
func (c *NotificationCache) InvalidateUnreadCount(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, unreadKey(userID)).Err()
}

// MarkReminderSent records that a reminder fired for a subscription at a
// threshold today. Returns true if this call was the first one; SETNX with a
// 24h TTL keeps the sweep from duplicating reminders across runs.
func (c *NotificationCache) MarkReminderSent(ctx context.Context, subscriptionID int64, days int, day string) (bool, error) {
	key := fmt.Sprintf("reminder_sent:%d:%d:%s", subscriptionID, days, day)
	return c.client.SetNX(ctx, key, "1", 24*time.Hour).Result()
}

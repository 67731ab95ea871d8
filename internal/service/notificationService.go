package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	repository "github.com/subtrackhq/subtrack/internal/database/postgres"
	cache "github.com/subtrackhq/subtrack/internal/database/redis"
	"github.com/subtrackhq/subtrack/internal/entity"
	"github.com/subtrackhq/subtrack/pkg/queue"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FeedLimit caps the bell dropdown at the most recent notifications.
const FeedLimit = 10

type notificationService struct {
	notificationRepo repository.NotificationRepository
	prefsRepo        repository.PreferencesRepository
	userRepo         repository.UserRepository
	cache            *cache.NotificationCache
	publisher        TaskPublisher
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	prefsRepo repository.PreferencesRepository,
	userRepo repository.UserRepository,
	notificationCache *cache.NotificationCache,
	publisher TaskPublisher,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		prefsRepo:        prefsRepo,
		userRepo:         userRepo,
		cache:            notificationCache,
		publisher:        publisher,
	}
}

func (s *notificationService) List(ctx context.Context, userID int64, limit int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > FeedLimit {
		limit = FeedLimit
	}

	notifications, err := s.notificationRepo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) CheckForNew(ctx context.Context, userID int64, force bool) (*FeedSnapshot, error) {
	notifications, err := s.List(ctx, userID, FeedLimit)
	if err != nil {
		return nil, err
	}

	badge, err := s.UnreadCount(ctx, userID, force)
	if err != nil {
		return nil, err
	}

	return &FeedSnapshot{
		Notifications: notifications,
		UnreadCount:   badge.Count,
		Badge:         badge.Badge,
	}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID int64, id string) error {
	if err := s.notificationRepo.MarkRead(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateBadge(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID int64) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateBadge(ctx, userID)
	return nil
}

func (s *notificationService) Delete(ctx context.Context, userID int64, id string) error {
	if err := s.notificationRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateBadge(ctx, userID)
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int64, force bool) (*UnreadBadge, error) {
	if !force && s.cache != nil {
		if count, ok := s.cache.GetUnreadCount(ctx, userID); ok {
			return &UnreadBadge{Count: count, Badge: entity.BadgeValue(count)}, nil
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetUnreadCount(ctx, userID, count); err != nil {
			logrus.Warnf("Failed to cache unread count for user %d: %v", userID, err)
		}
	}

	return &UnreadBadge{Count: count, Badge: entity.BadgeValue(count)}, nil
}

func (s *notificationService) Urgent(ctx context.Context, userID int64) ([]*entity.Notification, error) {
	unread, err := s.notificationRepo.GetUnreadByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unread notifications: %w", err)
	}

	urgent := make([]*entity.Notification, 0, len(unread))
	for _, n := range unread {
		if n.IsUrgent() {
			urgent = append(urgent, n)
		}
	}
	return urgent, nil
}

// Notify persists the notification and, when the owner has email enabled,
// enqueues a delivery task. A failed enqueue never fails the insert.
func (s *notificationService) Notify(ctx context.Context, n *entity.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}
	s.invalidateBadge(ctx, n.UserID)

	if err := s.fanOutEmail(ctx, n); err != nil {
		logrus.Warnf("Failed to enqueue email for notification %s: %v", n.ID, err)
	}
	return nil
}

func (s *notificationService) fanOutEmail(ctx context.Context, n *entity.Notification) error {
	if s.publisher == nil {
		return nil
	}

	prefs, err := s.prefsRepo.Get(ctx, n.UserID)
	if err != nil {
		return err
	}
	if prefs == nil || !prefs.EmailEnabled {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, n.UserID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(queue.EmailTask{
		To:      user.Email,
		Subject: n.Title,
		Body:    n.Message,
	})
	if err != nil {
		return err
	}

	task := &Task{
		Type: queue.TaskTypeEmail,
		Data: payload,
	}
	// Reminder mail waits for the user's preferred send time; everything else
	// goes out immediately.
	if n.Type == entity.NotificationRenewalReminder {
		task.ExecuteAt = nextEmailTime(prefs.EmailTime, time.Now())
	}

	return s.publisher.Publish(ctx, task)
}

func (s *notificationService) invalidateBadge(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUnreadCount(ctx, userID); err != nil {
		logrus.Warnf("Failed to invalidate unread count for user %d: %v", userID, err)
	}
}

// nextEmailTime resolves an "HH:MM" preference to the next occurrence of that
// wall-clock time, today if still ahead, otherwise tomorrow.
func nextEmailTime(emailTime string, now time.Time) time.Time {
	parsed, err := time.Parse("15:04", emailTime)
	if err != nil {
		return now
	}

	candidate := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if candidate.Before(now) {
		candidate = candidate.Add(24 * time.Hour)
	}
	return candidate
}

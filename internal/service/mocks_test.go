package service

import (
	"context"
	"time"

	"github.com/subtrackhq/subtrack/internal/entity"
)

// In-memory fakes for the repository interfaces, shared by the service tests.

type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return entity.ErrUserAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	user, _ := r.GetByEmail(context.Background(), email)
	return user != nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return entity.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

type fakePlanRepo struct {
	plans map[int64]*entity.UserPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[int64]*entity.UserPlan)}
}

func (r *fakePlanRepo) Get(_ context.Context, userID int64) (*entity.UserPlan, error) {
	return r.plans[userID], nil
}

func (r *fakePlanRepo) Upsert(_ context.Context, plan *entity.UserPlan) error {
	r.plans[plan.UserID] = plan
	return nil
}

type fakeSubscriptionRepo struct {
	subs   map[int64]*entity.Subscription
	nextID int64
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[int64]*entity.Subscription), nextID: 1}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	sub.ID = r.nextID
	r.nextID++
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id int64) (*entity.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, entity.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (r *fakeSubscriptionRepo) GetByUserID(_ context.Context, userID int64) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, sub := range r.subs {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *entity.Subscription) error {
	if _, ok := r.subs[sub.ID]; !ok {
		return entity.ErrSubscriptionNotFound
	}
	r.subs[sub.ID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.subs[id]; !ok {
		return entity.ErrSubscriptionNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *fakeSubscriptionRepo) CountByUser(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, sub := range r.subs {
		if sub.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubscriptionRepo) GetRenewingBetween(_ context.Context, from, to time.Time) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, sub := range r.subs {
		if !sub.NextRenewal.Before(from) && !sub.NextRenewal.After(to) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) GetOverdue(_ context.Context, before time.Time) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, sub := range r.subs {
		if sub.NextRenewal.Before(before) {
			out = append(out, sub)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) GetByUserID(_ context.Context, userID int64, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for i := len(r.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if r.notifications[i].UserID == userID {
			out = append(out, r.notifications[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) GetUnreadByUserID(_ context.Context, userID int64) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, userID int64, id string) error {
	for _, n := range r.notifications {
		if n.UserID == userID && n.ID == id && !n.IsRead {
			n.IsRead = true
			return nil
		}
	}
	return entity.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, userID int64, id string) error {
	for i, n := range r.notifications {
		if n.UserID == userID && n.ID == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return entity.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakePreferencesRepo struct {
	prefs map[int64]*entity.NotificationPreferences
}

func newFakePreferencesRepo() *fakePreferencesRepo {
	return &fakePreferencesRepo{prefs: make(map[int64]*entity.NotificationPreferences)}
}

func (r *fakePreferencesRepo) Get(_ context.Context, userID int64) (*entity.NotificationPreferences, error) {
	return r.prefs[userID], nil
}

func (r *fakePreferencesRepo) Upsert(_ context.Context, prefs *entity.NotificationPreferences) error {
	r.prefs[prefs.UserID] = prefs
	return nil
}

// recordingNotifier captures Notify calls; the read paths are unused by the
// services under test.
type recordingNotifier struct {
	notified []*entity.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification *entity.Notification) error {
	n.notified = append(n.notified, notification)
	return nil
}

func (n *recordingNotifier) List(context.Context, int64, int) ([]*entity.Notification, error) {
	return nil, nil
}

func (n *recordingNotifier) CheckForNew(context.Context, int64, bool) (*FeedSnapshot, error) {
	return nil, nil
}

func (n *recordingNotifier) MarkAsRead(context.Context, int64, string) error { return nil }

func (n *recordingNotifier) MarkAllAsRead(context.Context, int64) error { return nil }

func (n *recordingNotifier) Delete(context.Context, int64, string) error { return nil }

func (n *recordingNotifier) UnreadCount(context.Context, int64, bool) (*UnreadBadge, error) {
	return &UnreadBadge{}, nil
}

func (n *recordingNotifier) Urgent(context.Context, int64) ([]*entity.Notification, error) {
	return nil, nil
}

type recordingPublisher struct {
	tasks []*Task
}

func (p *recordingPublisher) Publish(_ context.Context, task *Task) error {
	p.tasks = append(p.tasks, task)
	return nil
}

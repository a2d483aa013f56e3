package stores

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/kanaverse/animeplay/backend/internal/models"
	"github.com/kanaverse/animeplay/backend/internal/storage"
)

// NotificationStore keeps the ordered inbox of system messages.
type NotificationStore struct {
	store storage.Store
	now   func() time.Time
}

// NewNotificationStore creates a NotificationStore on top of the storage port.
func NewNotificationStore(store storage.Store) *NotificationStore {
	return &NotificationStore{store: store, now: time.Now}
}

// List returns the inbox in stored order, seeding the default entries when
// no state or unparsable state is persisted. The seed is only written back
// by the first mutation. A backend read fault is returned as-is.
func (s *NotificationStore) List(ctx context.Context) ([]models.Notification, error) {
	raw, err := s.store.Get(ctx, notificationsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s.defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	if err := json.Unmarshal(raw, &notifications); err != nil || notifications == nil {
		return s.defaults(), nil
	}
	return notifications, nil
}

// UnreadCount recomputes the unread total from the live inbox on every call.
func (s *NotificationStore) UnreadCount(ctx context.Context) (int, error) {
	notifications, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead marks one entry as read and persists the full inbox.
func (s *NotificationStore) MarkRead(ctx context.Context, id int) error {
	notifications, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].ID == id {
			notifications[i].Read = true
		}
	}
	return s.save(ctx, notifications)
}

// MarkAllRead marks every entry as read and persists the full inbox.
func (s *NotificationStore) MarkAllRead(ctx context.Context) error {
	notifications, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i := range notifications {
		notifications[i].Read = true
	}
	return s.save(ctx, notifications)
}

// Remove drops one entry and persists the remainder. Removing the last entry
// persists an empty inbox, which stays empty rather than reseeding.
func (s *NotificationStore) Remove(ctx context.Context, id int) error {
	notifications, err := s.List(ctx)
	if err != nil {
		return err
	}
	remaining := make([]models.Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.ID != id {
			remaining = append(remaining, n)
		}
	}
	return s.save(ctx, remaining)
}

// defaults is the inbox seeded on first use: two unread, one read.
func (s *NotificationStore) defaults() []models.Notification {
	now := s.now().UTC()
	return []models.Notification{
		{
			ID:        1,
			Title:     "New Episode Available",
			Message:   "Demon Slayer Season 4 - Episode 12 is now streaming.",
			Timestamp: now.Add(-2 * time.Minute),
			Read:      false,
			Category:  "episode",
		},
		{
			ID:        2,
			Title:     "Trending Now",
			Message:   "Solo Leveling is trending #1 today.",
			Timestamp: now.Add(-1 * time.Hour),
			Read:      false,
			Category:  "trending",
		},
		{
			ID:        3,
			Title:     "New Donghua Added",
			Message:   "Battle Through the Heavens Season 6 has been added.",
			Timestamp: now.Add(-3 * time.Hour),
			Read:      true,
			Category:  "new",
		},
	}
}

func (s *NotificationStore) save(ctx context.Context, notifications []models.Notification) error {
	raw, err := json.Marshal(notifications)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, notificationsKey, raw)
}

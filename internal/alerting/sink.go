package alerting

import (
	"context"
	"time"

	"github.com/rohitdhavare/my-expenses-tracker/internal/clock"
	"github.com/rohitdhavare/my-expenses-tracker/internal/logger"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

const publishTimeout = 5 * time.Second

// Sink is the only write path for alert notifications.
type Sink struct {
	users     UserFinder
	store     NotificationStore
	dedup     *Deduplicator
	clock     clock.Clock
	publisher Publisher
}

// NewSink creates a Sink. publisher may be nil.
func NewSink(users UserFinder, store NotificationStore, dedup *Deduplicator, clk clock.Clock, publisher Publisher) *Sink {
	return &Sink{users: users, store: store, dedup: dedup, clock: clk, publisher: publisher}
}

// Create persists an unread notification for the user, or returns nil, nil
// when an identical message was sent within the dedup window. An unknown
// user is an error and nothing is written.
func (s *Sink) Create(userID, message string) (*models.Notification, error) {
	if _, err := s.users.GetUserByID(userID); err != nil {
		return nil, err
	}

	ok, err := s.dedup.Admit(userID, message)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Get().Debugw("Notification suppressed as duplicate", "user_id", userID)
		return nil, nil
	}

	n := &models.Notification{
		UserID:    userID,
		Message:   message,
		IsRead:    false,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.store.Insert(n); err != nil {
		return nil, err
	}

	s.publish(n)
	return n, nil
}

func (s *Sink) publish(n *models.Notification) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishNotification(ctx, n); err != nil {
		logger.Get().Warnw("Failed to publish notification",
			"notification_id", n.ID, "user_id", n.UserID, "error", err)
	}
}

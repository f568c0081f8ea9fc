package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// notificationService handles reading and managing notifications.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// Insert persists n as given. Dedup is the caller's concern.
func (s *notificationService) Insert(n *models.Notification) error {
	if err := s.db.Create(n).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// HasMessageSince looks the message up by its fingerprint on the
// (user_id, message_hash, created_at) index. The message itself is compared
// too so a hash collision cannot suppress a different alert.
func (s *notificationService) HasMessageSince(userID, message string, since time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND message_hash = ? AND created_at > ?", userID, models.HashMessage(message), since.UTC()).
		Where("message = ?", message).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// ListCreatedSince returns the user's notifications created at or after since.
func (s *notificationService) ListCreatedSince(userID string, since time.Time) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return notifications, nil
}

// GetUserNotifications returns all of the user's notifications, newest first.
func (s *notificationService) GetUserNotifications(userID string) ([]models.Notification, error) {
	return s.list(s.db.Where("user_id = ?", userID))
}

// GetUnreadNotifications returns the user's unread notifications, newest first.
func (s *notificationService) GetUnreadNotifications(userID string) ([]models.Notification, error) {
	return s.list(s.db.Where("user_id = ? AND is_read = ?", userID, false))
}

func (s *notificationService) list(query *gorm.DB) ([]models.Notification, error) {
	notifications := []models.Notification{}
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read.
func (s *notificationService) MarkRead(id string) error {
	return s.setRead(id, true)
}

// MarkUnread flags a notification as unread.
func (s *notificationService) MarkUnread(id string) error {
	return s.setRead(id, false)
}

func (s *notificationService) setRead(id string, read bool) error {
	result := s.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", read)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification of the user as read and
// returns how many changed.
func (s *notificationService) MarkAllRead(userID string) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteNotification permanently deletes a notification.
func (s *notificationService) DeleteNotification(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Notification{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// DeleteAllNotifications permanently deletes all of the user's notifications.
func (s *notificationService) DeleteAllNotifications(userID string) (int64, error) {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Notification{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

package amqp

import (
	"encoding/json"
	"time"

	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// NotificationMessage is the event body published for every stored notification.
type NotificationMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationMessage builds the event for n.
func NewNotificationMessage(n *models.Notification) *NotificationMessage {
	return &NotificationMessage{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *NotificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// NotificationMessageFromJSON decodes a message published by PublishNotification.
func NotificationMessageFromJSON(data []byte) (*NotificationMessage, error) {
	var msg NotificationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

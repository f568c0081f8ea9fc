package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/rohitdhavare/my-expenses-tracker/internal/uuid"

	"gorm.io/gorm"
)

// Notification is an alert delivered to a user. Only IsRead changes after creation.
//
// MessageHash is the dedup fingerprint: together with UserID and CreatedAt it
// forms the index used to find an identical recent message without scanning
// the user's history.
type Notification struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index:idx_notifications_dedup,priority:1;index:idx_notifications_user_created,priority:1" json:"user_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	MessageHash string    `gorm:"size:64;not null;index:idx_notifications_dedup,priority:2" json:"-"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time `gorm:"not null;index:idx_notifications_dedup,priority:3;index:idx_notifications_user_created,priority:2" json:"created_at"`
}

// BeforeCreate assigns the ID and fingerprints the message.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New()
	}
	n.MessageHash = HashMessage(n.Message)
	return nil
}

// HashMessage returns the hex SHA-256 of a notification message.
func HashMessage(message string) string {
	sum := sha256.Sum256([]byte(message))
	return hex.EncodeToString(sum[:])
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	NotificationFollow  NotificationType = "follow"
	NotificationComment NotificationType = "comment"
	NotificationReply   NotificationType = "reply"
)

// Notification tells RecipientID that ActorID did something.
type Notification struct {
	ID          uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	RecipientID uuid.UUID        `json:"recipientId" gorm:"type:char(36);not null;index"`
	ActorID     uuid.UUID        `json:"actorId" gorm:"type:char(36);not null"`
	Type        NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	BlogID      *uuid.UUID       `json:"blogId,omitempty" gorm:"type:char(36)"`
	CommentID   *uuid.UUID       `json:"commentId,omitempty" gorm:"type:char(36)"`
	Message     string           `json:"message" gorm:"size:255"`
	Read        bool             `json:"read" gorm:"not null;default:false;index"`
	CreatedAt   time.Time        `json:"createdAt" gorm:"index"`

	// Relations
	Actor *User `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

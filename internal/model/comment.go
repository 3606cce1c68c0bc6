package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a remark on a blog. Replies point at their parent comment.
type Comment struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	BlogID    uuid.UUID      `json:"blogId" gorm:"type:char(36);not null;index"`
	AuthorID  uuid.UUID      `json:"authorId" gorm:"type:char(36);not null;index"`
	ParentID  *uuid.UUID     `json:"parentId,omitempty" gorm:"type:char(36);index"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Author  *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// OwnedBy reports whether userID wrote the comment.
func (c *Comment) OwnedBy(userID uuid.UUID) bool {
	return c.AuthorID == userID
}

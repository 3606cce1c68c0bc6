package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Blog is a markdown post written by a user.
type Blog struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	AuthorID   uuid.UUID      `json:"authorId" gorm:"type:char(36);not null;index"`
	Title      string         `json:"title" gorm:"size:255;not null"`
	Content    string         `json:"content" gorm:"type:longtext;not null"`
	CoverImage string         `json:"coverImage,omitempty" gorm:"size:512"`
	Tags       string         `json:"-" gorm:"size:512"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TagList splits the stored comma separated tags.
func (b *Blog) TagList() []string {
	if b.Tags == "" {
		return []string{}
	}
	return strings.Split(b.Tags, ",")
}

// SetTags normalizes and stores tags as a comma separated list.
func (b *Blog) SetTags(tags []string) {
	clean := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		clean = append(clean, t)
	}
	b.Tags = strings.Join(clean, ",")
}

// OwnedBy reports whether userID authored the blog.
func (b *Blog) OwnedBy(userID uuid.UUID) bool {
	return b.AuthorID == userID
}

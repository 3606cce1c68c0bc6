package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered author in the system.
type User struct {
	ID             uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Email          string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	UserName       string         `json:"userName" gorm:"size:100;not null;index"`
	PasswordHash   string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Avatar         string         `json:"avatar" gorm:"size:512"`
	Banner         string         `json:"banner" gorm:"size:512"`
	Code           int            `json:"code" gorm:"not null;index"`
	Description    string         `json:"description" gorm:"type:text"`
	FollowersCount int            `json:"followers" gorm:"not null;default:0"`
	FollowingCount int            `json:"following" gorm:"not null;default:0"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ProfilePatch carries the optional fields of a profile update.
type ProfilePatch struct {
	UserName    *string `json:"userName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Banner      *string `json:"banner,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply copies the non-nil fields of p onto u and reports whether anything changed.
func (p ProfilePatch) Apply(u *User) bool {
	changed := false
	if p.UserName != nil {
		u.UserName = *p.UserName
		changed = true
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
		changed = true
	}
	if p.Banner != nil {
		u.Banner = *p.Banner
		changed = true
	}
	if p.Description != nil {
		u.Description = *p.Description
		changed = true
	}
	return changed
}

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo is a gallery entry whose bytes live in object storage under ObjectKey.
type Photo struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID      `json:"ownerId" gorm:"type:char(36);not null;index"`
	Caption     string         `json:"caption" gorm:"size:255"`
	FileName    string         `json:"fileName" gorm:"size:255"`
	ContentType string         `json:"contentType" gorm:"size:100"`
	Size        int64          `json:"size"`
	ObjectKey   string         `json:"-" gorm:"size:255;not null"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"index"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PhotoObjectKey builds the storage key for a photo.
func PhotoObjectKey(ownerID, photoID uuid.UUID) string {
	return fmt.Sprintf("photos/%s/%s", ownerID, photoID)
}

// OwnedBy reports whether userID uploaded the photo.
func (p *Photo) OwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: FollowerID follows FolloweeID.
type Follow struct {
	FollowerID uuid.UUID `json:"followerId" gorm:"type:char(36);primaryKey"`
	FolloweeID uuid.UUID `json:"followeeId" gorm:"type:char(36);primaryKey;index"`
	CreatedAt  time.Time `json:"createdAt"`
}

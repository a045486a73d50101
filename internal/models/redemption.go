package models

import (
	"time"

	"github.com/google/uuid"
)

// Redemption is an immutable log row written when points are deducted for a
// reward. Never updated after creation.
type Redemption struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RewardID  string    `gorm:"size:20;not null" json:"reward_id"`
	PtsSpent  int       `gorm:"not null" json:"pts_spent"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a citizen account. Phone is the login key; pts and reports are
// aggregate counters maintained by the report intake and redemption flows.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:80;not null" json:"name"`
	Phone        string     `gorm:"size:10;not null;uniqueIndex" json:"phone"`
	Email        *string    `gorm:"size:255" json:"email,omitempty"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Pts          int        `gorm:"not null" json:"pts"`
	Reports      int        `gorm:"not null" json:"reports"`
	Rank         int        `gorm:"not null" json:"rank"`
	Badge        string     `gorm:"size:16" json:"badge"`
	Title        string     `gorm:"size:50" json:"title"`
	City         string     `gorm:"size:100" json:"city"`
	Verified     bool       `json:"verified"`
	IsBanned     bool       `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

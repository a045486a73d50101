package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog is a persisted ERROR+ log record, batched in by the logging
// package and pruned after 30 days.
type SystemLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"index" json:"timestamp"`
	Level     string         `gorm:"size:10" json:"level"`
	Message   string         `gorm:"size:500" json:"message"`
	RequestID string         `gorm:"size:64;index" json:"request_id,omitempty"`
	UserID    *string        `gorm:"size:64" json:"user_id,omitempty"`
	Action    string         `gorm:"size:100" json:"action,omitempty"`
	Error     string         `gorm:"size:2000" json:"error,omitempty"`
	LatencyMs int            `json:"latency_ms,omitempty"`
	Extra     datatypes.JSON `json:"extra,omitempty"`
}

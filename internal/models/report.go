package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Report is a single citizen submission. BlockchainHash is computed once at
// creation over (user id, title, location, submission instant) and never
// recomputed. Votes mirrors the number of Vote rows for the report.
type Report struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Category       string         `gorm:"size:20;not null;index" json:"category"`
	Title          string         `gorm:"size:200;not null" json:"title"`
	Description    string         `gorm:"size:2000" json:"description"`
	Location       string         `gorm:"size:300;not null" json:"location"`
	City           string         `gorm:"size:100;not null;index" json:"city"`
	Lat            *float64       `json:"lat,omitempty"`
	Lng            *float64       `json:"lng,omitempty"`
	IsAnonymous    bool           `json:"is_anonymous"`
	IsUrgent       bool           `json:"is_urgent"`
	Status         string         `gorm:"size:20;not null;index" json:"status"`
	AIScore        int            `gorm:"column:ai_score" json:"ai_score"`
	BlockchainHash string         `gorm:"size:64" json:"blockchain_hash"`
	EvidenceURLs   datatypes.JSON `json:"evidence_urls"`
	Votes          int            `gorm:"not null" json:"votes"`
	PtsPotential   int            `json:"pts_potential"`
	PtsAwarded     int            `json:"pts_awarded"`
	ImpactNote     string         `gorm:"size:500" json:"impact_note,omitempty"`
	RTIFiled       bool           `gorm:"column:rti_filed" json:"rti_filed"`
	RTIFiledAt     *time.Time     `gorm:"column:rti_filed_at" json:"rti_filed_at,omitempty"`
	IsDeleted      bool           `gorm:"index" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	User           User           `gorm:"foreignKey:UserID" json:"-"`
}

// Report lifecycle statuses.
const (
	StatusPending     = "pending"
	StatusVerified    = "verified"
	StatusActionTaken = "action_taken"
	StatusResolved    = "resolved"
	StatusRejected    = "rejected"
)

// Vote is an append-only (report, voter) join record. The composite primary
// key enforces at most one vote per user per report.
type Vote struct {
	ReportID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"report_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/praharilabs/prahari-backend/internal/scorer"
)

// CreateReportRequest carries the multipart form fields of a submission.
// Evidence files travel separately as multipart file headers.
type CreateReportRequest struct {
	Category    string   `json:"category" form:"category"`
	Title       string   `json:"title" form:"title"`
	Description string   `json:"desc" form:"desc"`
	Location    string   `json:"location" form:"location"`
	City        string   `json:"city" form:"city"`
	Lat         *float64 `json:"lat,omitempty" form:"lat"`
	Lng         *float64 `json:"lng,omitempty" form:"lng"`
	IsAnonymous bool     `json:"is_anonymous" form:"is_anonymous"`
	IsUrgent    bool     `json:"is_urgent" form:"is_urgent"`
}

type CreateReportResponse struct {
	ReportID       uuid.UUID          `json:"reportId"`
	AIScore        *scorer.Assessment `json:"aiScore"`
	PtsAwarded     int                `json:"ptsAwarded"`
	PtsPotential   int                `json:"ptsPotential"`
	BlockchainHash string             `json:"blockchainHash"`
	Message        string             `json:"message"`
}

// ListReportsQuery is the parsed query string of the public feed.
type ListReportsQuery struct {
	Page     int
	Limit    int
	Category string
	City     string
	Status   string
}

// ReportSummary is a public feed row. ReporterName is masked for anonymous
// submissions.
type ReportSummary struct {
	ID           uuid.UUID `json:"id"`
	Category     string    `json:"category"`
	Title        string    `json:"title"`
	Location     string    `json:"location,omitempty"`
	City         string    `json:"city"`
	Status       string    `json:"status"`
	PtsAwarded   int       `json:"pts_awarded"`
	Votes        int       `json:"votes"`
	ImpactNote   string    `json:"impact_note,omitempty"`
	AIScore      int       `json:"ai_score"`
	IsAnonymous  bool      `json:"is_anonymous"`
	ReporterName string    `json:"reporter_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReportsListResponse struct {
	Reports []ReportSummary `json:"reports"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
}

// ReportDetail is the full public view of a single report.
type ReportDetail struct {
	ID             uuid.UUID  `json:"id"`
	Category       string     `json:"category"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	City           string     `json:"city"`
	Lat            *float64   `json:"lat,omitempty"`
	Lng            *float64   `json:"lng,omitempty"`
	Status         string     `json:"status"`
	AIScore        int        `json:"ai_score"`
	BlockchainHash string     `json:"blockchain_hash"`
	EvidenceURLs   []string   `json:"evidence_urls"`
	Votes          int        `json:"votes"`
	PtsPotential   int        `json:"pts_potential"`
	PtsAwarded     int        `json:"pts_awarded"`
	ImpactNote     string     `json:"impact_note,omitempty"`
	IsAnonymous    bool       `json:"is_anonymous"`
	IsUrgent       bool       `json:"is_urgent"`
	RTIFiled       bool       `json:"rti_filed"`
	RTIFiledAt     *time.Time `json:"rti_filed_at,omitempty"`
	ReporterName   string     `json:"reporter_name"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MyReportSummary is the compact row returned under GET /users/me.
type MyReportSummary struct {
	ID         uuid.UUID `json:"id"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	PtsAwarded int       `json:"pts_awarded"`
	CreatedAt  time.Time `json:"created_at"`
}

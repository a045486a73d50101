// Package scorer produces the advisory credibility assessment attached to
// each report. Scoring never gates submission: callers fall back to
// DefaultAssessment when a scorer fails or times out.
package scorer

import "context"

// Priority labels, highest first.
const (
	PriorityCritical = "CRITICAL"
	PriorityHigh     = "HIGH"
	PriorityMedium   = "MEDIUM"
	PriorityLow      = "LOW"
)

// Input is the report content handed to a scorer.
type Input struct {
	Category    string
	Title       string
	Description string
	Location    string
}

// Assessment is the structured result of credibility scoring.
type Assessment struct {
	Credibility     int      `json:"credibility"`
	Priority        string   `json:"priority"`
	IsLikelyGenuine bool     `json:"isLikelyGenuine"`
	Concerns        []string `json:"concerns"`
}

// Scorer assesses a report's credibility. Implementations must respect the
// context deadline.
type Scorer interface {
	Assess(ctx context.Context, in Input) (*Assessment, error)
}

// DefaultAssessment is the conservative fallback used when scoring fails:
// moderate credibility, medium priority, no concerns.
func DefaultAssessment() *Assessment {
	return &Assessment{
		Credibility:     65,
		Priority:        PriorityMedium,
		IsLikelyGenuine: true,
		Concerns:        []string{},
	}
}

func clampCredibility(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func validPriority(p string) bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

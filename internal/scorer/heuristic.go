package scorer

import (
	"context"
	"strings"
)

// HeuristicScorer is the deterministic local scorer used when no AI backend
// is configured. It rewards reports that carry enough detail to verify.
type HeuristicScorer struct{}

func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

func (HeuristicScorer) Assess(_ context.Context, in Input) (*Assessment, error) {
	score := 60
	concerns := []string{}

	desc := strings.TrimSpace(in.Description)
	switch {
	case len(desc) >= 100:
		score += 15
	case len(desc) >= 30:
		score += 8
	case len(desc) < 10:
		concerns = append(concerns, "description is very short")
		score -= 10
	}

	if len(strings.TrimSpace(in.Location)) >= 20 {
		score += 10
	}
	if len(strings.TrimSpace(in.Title)) >= 40 {
		score += 5
	}

	score = clampCredibility(score)

	priority := PriorityLow
	switch {
	case score >= 80 && (in.Category == "corruption" || in.Category == "water"):
		priority = PriorityHigh
	case score >= 60:
		priority = PriorityMedium
	}

	return &Assessment{
		Credibility:     score,
		Priority:        priority,
		IsLikelyGenuine: score >= 50,
		Concerns:        concerns,
	}, nil
}

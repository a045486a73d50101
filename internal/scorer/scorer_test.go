package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAssessment(t *testing.T) {
	a := DefaultAssessment()
	assert.Equal(t, 65, a.Credibility)
	assert.Equal(t, PriorityMedium, a.Priority)
	assert.True(t, a.IsLikelyGenuine)
	assert.NotNil(t, a.Concerns)
	assert.Empty(t, a.Concerns)
}

func TestHeuristicScorerDetailedReport(t *testing.T) {
	s := NewHeuristicScorer()

	a, err := s.Assess(context.Background(), Input{
		Category:    "road",
		Title:       "Massive pothole on the main approach road near the metro station",
		Description: strings.Repeat("The road has been broken for three months and buses swerve into oncoming traffic. ", 2),
		Location:    "Outer Ring Road, near Agara junction, Bengaluru",
	})
	require.NoError(t, err)

	// 60 base + 15 long description + 10 location + 5 title = 90.
	assert.Equal(t, 90, a.Credibility)
	assert.Equal(t, PriorityMedium, a.Priority)
	assert.True(t, a.IsLikelyGenuine)
	assert.Empty(t, a.Concerns)
}

func TestHeuristicScorerHighPriorityCategories(t *testing.T) {
	s := NewHeuristicScorer()
	in := Input{
		Title:       "Officials demanding bribes for water tanker bookings here",
		Description: strings.Repeat("Residents of the colony are being asked to pay extra for every booking. ", 2),
		Location:    "Ward 45 municipal office, Sector 12",
	}

	for _, category := range []string{"corruption", "water"} {
		in.Category = category
		a, err := s.Assess(context.Background(), in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, a.Credibility, 80)
		assert.Equal(t, PriorityHigh, a.Priority, "category %s", category)
	}

	in.Category = "litter"
	a, err := s.Assess(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, a.Priority)
}

func TestHeuristicScorerShortDescription(t *testing.T) {
	s := NewHeuristicScorer()

	a, err := s.Assess(context.Background(), Input{
		Category:    "litter",
		Title:       "Garbage pile",
		Description: "bad",
		Location:    "Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, 50, a.Credibility)
	assert.Equal(t, PriorityLow, a.Priority)
	assert.True(t, a.IsLikelyGenuine)
	assert.Contains(t, a.Concerns, "description is very short")
}

func TestHeuristicScorerDeterministic(t *testing.T) {
	s := NewHeuristicScorer()
	in := Input{Category: "pollution", Title: "Factory smoke", Description: "Thick black smoke every evening from the unit.", Location: "Industrial area phase 2"}

	first, err := s.Assess(context.Background(), in)
	require.NoError(t, err)
	second, err := s.Assess(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func aiResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestAIScorerParsesAssessment(t *testing.T) {
	var gotAuth string
	var gotReq openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, aiResponse(`{"credibility": 82, "priority": "HIGH", "isLikelyGenuine": true, "concerns": ["no photo evidence"]}`))
	}))
	defer srv.Close()

	s := NewAIScorer(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	a, err := s.Assess(context.Background(), Input{Category: "corruption", Title: "Bribe demanded at RTO", Location: "RTO office, Indiranagar"})
	require.NoError(t, err)

	assert.Equal(t, 82, a.Credibility)
	assert.Equal(t, PriorityHigh, a.Priority)
	assert.True(t, a.IsLikelyGenuine)
	assert.Equal(t, []string{"no photo evidence"}, a.Concerns)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Contains(t, gotReq.Messages[1].Content, "Bribe demanded at RTO")
}

func TestAIScorerStripsCodeFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, aiResponse("```json\n{\"credibility\": 70, \"priority\": \"MEDIUM\", \"isLikelyGenuine\": true}\n```"))
	}))
	defer srv.Close()

	s := NewAIScorer(srv.URL, "k", "m", 5*time.Second)
	a, err := s.Assess(context.Background(), Input{Category: "road", Title: "t", Location: "l"})
	require.NoError(t, err)
	assert.Equal(t, 70, a.Credibility)
	assert.Equal(t, []string{}, a.Concerns)
}

func TestAIScorerClampsAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, aiResponse(`{"credibility": 250, "priority": "URGENT!!", "isLikelyGenuine": false}`))
	}))
	defer srv.Close()

	s := NewAIScorer(srv.URL, "k", "m", 5*time.Second)
	a, err := s.Assess(context.Background(), Input{Category: "power", Title: "t", Location: "l"})
	require.NoError(t, err)
	assert.Equal(t, 100, a.Credibility)
	assert.Equal(t, PriorityMedium, a.Priority)
	assert.False(t, a.IsLikelyGenuine)
}

func TestAIScorerUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewAIScorer(srv.URL, "k", "m", 5*time.Second)
	_, err := s.Assess(context.Background(), Input{Category: "road", Title: "t", Location: "l"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestAIScorerMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, aiResponse("I cannot evaluate this report."))
	}))
	defer srv.Close()

	s := NewAIScorer(srv.URL, "k", "m", 5*time.Second)
	_, err := s.Assess(context.Background(), Input{Category: "road", Title: "t", Location: "l"})
	assert.Error(t, err)
}

func TestAIScorerRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect and
		// cancels the request context; otherwise this handler never returns
		// and srv.Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	s := NewAIScorer(srv.URL, "k", "m", time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Assess(ctx, Input{Category: "road", Title: "t", Location: "l"})
	assert.Error(t, err)
}

package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AIScorer calls an OpenAI-compatible chat-completions endpoint to verify a
// report. The HTTP client timeout bounds the call; the caller falls back to
// DefaultAssessment on any error.
type AIScorer struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

func NewAIScorer(apiURL, apiKey, model string, timeout time.Duration) *AIScorer {
	return &AIScorer{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

const verifierSystemPrompt = "You are a civic report verifier for India. You respond with only valid JSON."

func (s *AIScorer) Assess(ctx context.Context, in Input) (*Assessment, error) {
	desc := in.Description
	if desc == "" {
		desc = "N/A"
	}

	prompt := fmt.Sprintf(
		`Analyze this citizen report and give a JSON response with: credibility (0-100), priority (CRITICAL/HIGH/MEDIUM/LOW), isLikelyGenuine (bool), concerns (array of strings if any). Report: Category: %s, Title: %q, Location: %q, Description: %q`,
		in.Category, in.Title, in.Location, desc)

	reqBody, err := json.Marshal(openAIRequest{
		Model: s.model,
		Messages: []openAIMessage{
			{Role: "system", Content: verifierSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   200,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call scoring API: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(httpResp.Body)
		return nil, fmt.Errorf("scoring API error (status %d): %s", httpResp.StatusCode, string(body))
	}

	var oaiResp openAIResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&oaiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(oaiResp.Choices) == 0 {
		return nil, errors.New("empty response from scoring API")
	}

	var assessment Assessment
	content := cleanJSONContent(oaiResp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse assessment: %w", err)
	}

	assessment.Credibility = clampCredibility(assessment.Credibility)
	if !validPriority(assessment.Priority) {
		assessment.Priority = PriorityMedium
	}
	if assessment.Concerns == nil {
		assessment.Concerns = []string{}
	}
	return &assessment, nil
}

func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiRanker implements JobRanker using Google's Gemini models.
type GeminiRanker struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiRanker initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiRanker(ctx context.Context, apiKey string) (*GeminiRanker, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)

	// Force JSON responses for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Low temperature: ranking should be stable, not creative.
	model.SetTemperature(0.2)

	return &GeminiRanker{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (r *GeminiRanker) Close() {
	r.client.Close()
}

// RankJobs asks the model to score every job in the pool for the driver.
// The response is parsed strictly; the caller validates each entry against
// the original pool before use.
func (r *GeminiRanker) RankJobs(ctx context.Context, req RankRequest) ([]RankedJob, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	prompt := buildRankingPrompt(string(payload))

	resp, err := r.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// JSON mode should already return bare JSON, but strip fences anyway.
	cleanJSON := cleanJSONString(responseText.String())

	var ranked []RankedJob
	if err := json.Unmarshal([]byte(cleanJSON), &ranked); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}

	return ranked, nil
}

// buildRankingPrompt constructs the instructions for the model.
func buildRankingPrompt(payload string) string {
	return fmt.Sprintf(`Role: You are the dispatch ranking core of a waste-haulage marketplace.
You receive one driver profile and a pool of open collection jobs as JSON.

Task: score how suitable each job is for this driver, considering distance
between the driver and the pickup point, whether the vehicle capacity covers
the required volume, how well the category matches the driver's preferences,
urgency, and offered price.

RULES:
1. Score EVERY job in the pool exactly once. Do not invent job ids.
2. Each score MUST be a number between 0 and 1.
3. "reasons" is a short list of human-readable notes explaining the score.
4. Output ONLY a JSON array, no prose, matching this schema:
[
  {"job_id": "string", "score": 0.0, "reasons": ["string"]}
]

Input:
%s
`, payload)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

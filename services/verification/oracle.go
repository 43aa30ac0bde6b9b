// File: urbanserve/services/verification/oracle.go
package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrAPIKeyMissing signals that the oracle credential is absent. This is a
// configuration error: surfaced immediately, never retried, and distinct
// from ordinary oracle failures.
var ErrAPIKeyMissing = errors.New("GEMINI_API_KEY is not set; AI verification is disabled")

// ScoringOracle is the external judgment service: free-text evidence in,
// raw model output out. Implementations are untrusted and fallible; callers
// must fail closed on any error.
type ScoringOracle interface {
	Judge(ctx context.Context, prompt string) (string, error)
}

// GeminiOracle implements ScoringOracle on the Gemini API.
type GeminiOracle struct {
	model *genai.GenerativeModel
}

// NewGeminiOracle builds the oracle client. Returns ErrAPIKeyMissing when
// no credential is configured.
func NewGeminiOracle(apiKey, modelName string) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)
	return &GeminiOracle{model: model}, nil
}

// Judge sends the evidence prompt and returns the concatenated text reply.
func (g *GeminiOracle) Judge(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// DisabledOracle stands in when no credential is configured. Every
// judgment errors with ErrAPIKeyMissing, which the pipeline converts into
// a rejection.
type DisabledOracle struct{}

func (DisabledOracle) Judge(ctx context.Context, prompt string) (string, error) {
	return "", ErrAPIKeyMissing
}

// stripCodeFence removes a surrounding markdown code fence from a model
// reply, tolerating an optional "json" language tag.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	segments := strings.Split(raw, "```")
	if len(segments) < 2 {
		return raw
	}
	body := segments[1]
	body = strings.TrimPrefix(body, "json")
	return strings.TrimSpace(body)
}

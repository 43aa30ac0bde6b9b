// File: urbanserve/services/intelligence/classifier.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"urbanserve/models"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// ErrAPIKeyMissing signals the classifier credential is absent. Surfaced
// immediately as a configuration error, never retried.
var ErrAPIKeyMissing = errors.New("GEMINI_API_KEY is not set; chat is disabled")

// ProviderToolName is the capability the classifier may invoke to fetch
// ranked providers for a category.
const ProviderToolName = "fetch_providers"

// ClassifierReply is one classifier turn: free text, zero or more tool
// invocations, or both.
type ClassifierReply struct {
	Text      string
	ToolCalls []models.ToolCall
}

// Classifier is the natural-language service that drives the
// recommendation loop: conversation in, text and/or tool invocations out.
type Classifier interface {
	NextTurn(ctx context.Context, turns []models.ChatTurn) (*ClassifierReply, error)
}

const systemPrompt = `You are an intelligent home services assistant for the Urban platform.
Your job is to:
1. Understand the user's problem in natural language.
2. Ask clarifying questions if the required service is unclear (e.g. "Is it leaking, blocked, or completely broken?" for plumbing).
3. Determine the correct service category (e.g. plumber, electrician, cleaning, painting, gardening, or tutor subjects: mathematics, coding, language).
4. When you have enough information, call the fetch_providers function with the exact service_type (lowercase, e.g. plumber, electrician, mathematics).
5. After receiving provider results, respond conversationally with a short message and mention you're showing recommended providers. Keep responses concise.

Service mapping:
- Plumbing, pipe, leak, sink, toilet, drain -> plumber
- Electrical, wiring, fuse, lights -> electrician
- Cleaning, housekeeping, deep clean -> cleaning
- Painting, walls, interior -> painting
- Garden, lawn, plants -> gardening
- Math, mathematics -> mathematics
- Coding, programming -> coding
- Language, English, Hindi, etc. -> language

If the user says they need something urgent, we will prioritize highest-rated providers (already done by the system).
If no providers are found for a category, apologize and suggest trying again later.
Always respond in a friendly, helpful, concise way. When recommending, briefly introduce the list then rely on the structured data shown to the user.`

// DisabledClassifier stands in when no credential is configured. Every
// turn errors with ErrAPIKeyMissing so the chat endpoint can answer 503.
type DisabledClassifier struct{}

func (DisabledClassifier) NextTurn(ctx context.Context, turns []models.ChatTurn) (*ClassifierReply, error) {
	return nil, ErrAPIKeyMissing
}

// GeminiClassifier implements Classifier on Gemini function calling.
type GeminiClassifier struct {
	model *genai.GenerativeModel
}

// NewGeminiClassifier builds the classifier client. Returns
// ErrAPIKeyMissing when no credential is configured.
func NewGeminiClassifier(apiKey, modelName string) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.Tools = []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        ProviderToolName,
			Description: "Fetch approved providers for a given service type. Call this when you have determined the user's required service (e.g. plumber, electrician, cleaning, mathematics, coding).",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"service_type": {
						Type:        genai.TypeString,
						Description: "Exact service type: one of plumber, electrician, cleaning, painting, gardening, mathematics, coding, language, etc.",
					},
				},
				Required: []string{"service_type"},
			},
		}},
	}}
	return &GeminiClassifier{model: model}, nil
}

// NextTurn replays the conversation into a Gemini chat session and returns
// the model's next move.
func (g *GeminiClassifier) NextTurn(ctx context.Context, turns []models.ChatTurn) (*ClassifierReply, error) {
	contents := toContents(turns)
	if len(contents) == 0 {
		return nil, errors.New("conversation is empty")
	}

	session := g.model.StartChat()
	session.History = contents[:len(contents)-1]
	last := contents[len(contents)-1]

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini chat error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return &ClassifierReply{}, nil
	}

	reply := &ClassifierReply{}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				args = []byte("{}")
			}
			reply.ToolCalls = append(reply.ToolCalls, models.ToolCall{
				ID:        "call_" + uuid.New().String(),
				Name:      p.Name,
				Arguments: string(args),
			})
		}
	}
	reply.Text = sb.String()
	return reply, nil
}

// toContents maps explicit conversation turns onto Gemini chat contents.
// Consecutive tool-result turns merge into one user-role content so the
// session keeps alternating roles.
func toContents(turns []models.ChatTurn) []*genai.Content {
	var contents []*genai.Content
	for _, turn := range turns {
		switch turn.Role {
		case "assistant":
			content := &genai.Content{Role: "model"}
			if turn.Content != "" {
				content.Parts = append(content.Parts, genai.Text(turn.Content))
			}
			for _, tc := range turn.ToolCalls {
				var args map[string]any
				if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
					args = map[string]any{}
				}
				content.Parts = append(content.Parts, genai.FunctionCall{Name: tc.Name, Args: args})
			}
			if len(content.Parts) == 0 {
				content.Parts = append(content.Parts, genai.Text(""))
			}
			contents = append(contents, content)
		case "tool":
			var response map[string]any
			if err := json.Unmarshal([]byte(turn.Content), &response); err != nil {
				response = map[string]any{"content": turn.Content}
			}
			part := genai.FunctionResponse{Name: turn.ToolName, Response: response}
			if n := len(contents); n > 0 && contents[n-1].Role == "user" && isFunctionResponse(contents[n-1]) {
				contents[n-1].Parts = append(contents[n-1].Parts, part)
			} else {
				contents = append(contents, &genai.Content{Role: "user", Parts: []genai.Part{part}})
			}
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(turn.Content)}})
		}
	}
	return contents
}

func isFunctionResponse(c *genai.Content) bool {
	if len(c.Parts) == 0 {
		return false
	}
	_, ok := c.Parts[0].(genai.FunctionResponse)
	return ok
}

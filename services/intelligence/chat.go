// File: urbanserve/services/intelligence/chat.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"urbanserve/models"
	"urbanserve/services/matching"
	"urbanserve/utils"

	"go.uber.org/zap"
)

// Loop bounds and defaults.
const (
	maxRounds      = 5
	providerLimit  = 3
	defaultReply   = "I'm here to help. Could you describe what you need?"
	exhaustedReply = "Something went wrong. Please try again."
	defaultAITO    = 30 * time.Second
)

// urgencyKeywords flip ranking to rating-first when present anywhere in
// the conversation.
var urgencyKeywords = []string{"urgent", "asap", "emergency", "immediately", "right away"}

// ChatResult is the outcome of one inbound message: the assistant's reply,
// the most recent provider list fetched during the loop (nil when none),
// and the updated conversation.
type ChatResult struct {
	Reply     string
	Providers []models.ProviderSummary
	History   []models.ChatTurn
}

// ChatService runs the conversational recommendation loop.
type ChatService interface {
	Converse(ctx context.Context, message string, history []models.ChatTurn) (*ChatResult, error)
}

// DefaultChatService mediates between the classifier and provider ranking.
// The loop is bounded: at most maxRounds classifier calls per message,
// strictly sequential, with a defined fallback on exhaustion.
type DefaultChatService struct {
	Classifier Classifier
	Matcher    matching.MatchingService
	Timeout    time.Duration
}

func NewDefaultChatService(classifier Classifier, matcher matching.MatchingService, timeout time.Duration) *DefaultChatService {
	if timeout <= 0 {
		timeout = defaultAITO
	}
	return &DefaultChatService{Classifier: classifier, Matcher: matcher, Timeout: timeout}
}

// Converse appends the user message to the conversation and iterates the
// classifier until it stops invoking tools or the round budget runs out.
// Classifier failures are surfaced to the caller; tool-argument failures
// are reported back into the conversation and the loop continues.
func (s *DefaultChatService) Converse(ctx context.Context, message string, history []models.ChatTurn) (*ChatResult, error) {
	turns := make([]models.ChatTurn, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, models.ChatTurn{Role: "user", Content: message})

	urgent := containsUrgency(message, history)
	logger := utils.GetLogger()

	var providers []models.ProviderSummary

	for round := 1; round <= maxRounds; round++ {
		reply, err := s.nextTurn(ctx, turns)
		if err != nil {
			return nil, err
		}

		if len(reply.ToolCalls) == 0 {
			text := strings.TrimSpace(reply.Text)
			turns = append(turns, models.ChatTurn{Role: "assistant", Content: reply.Text})
			if text == "" {
				text = defaultReply
			}
			return &ChatResult{Reply: text, Providers: providers, History: turns}, nil
		}

		turns = append(turns, models.ChatTurn{
			Role:      "assistant",
			Content:   reply.Text,
			ToolCalls: reply.ToolCalls,
		})

		for _, tc := range reply.ToolCalls {
			if tc.Name != ProviderToolName {
				continue
			}
			result, fetched := s.executeFetch(ctx, tc, urgent)
			if fetched != nil {
				providers = fetched
			} else {
				providers = nil
			}
			turns = append(turns, models.ChatTurn{
				Role:       "tool",
				Content:    result,
				ToolCallID: tc.ID,
				ToolName:   tc.Name,
			})
		}
		logger.Debug("chat round complete",
			zap.Int("round", round),
			zap.Int("tool_calls", len(reply.ToolCalls)))
	}

	// Round budget exhausted: fall back to the last non-empty assistant text.
	reply := exhaustedReply
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == "assistant" && strings.TrimSpace(turns[i].Content) != "" {
			reply = turns[i].Content
			break
		}
	}
	return &ChatResult{Reply: reply, Providers: providers, History: turns}, nil
}

// executeFetch runs one fetch_providers invocation. Malformed arguments or
// ranking failures become a structured error result for the classifier;
// they never abort the loop.
func (s *DefaultChatService) executeFetch(ctx context.Context, tc models.ToolCall, urgent bool) (string, []models.ProviderSummary) {
	var args struct {
		ServiceType string `json:"service_type"`
	}
	if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	list, err := s.Matcher.RankProviders(ctx, args.ServiceType, providerLimit, urgent)
	if err != nil {
		utils.GetLogger().Warn("provider ranking failed inside chat loop", zap.Error(err))
		return toolError(err.Error()), nil
	}

	payload, err := json.Marshal(map[string]any{
		"providers": list,
		"count":     len(list),
	})
	if err != nil {
		return toolError(err.Error()), nil
	}
	return string(payload), list
}

func (s *DefaultChatService) nextTurn(ctx context.Context, turns []models.ChatTurn) (*ClassifierReply, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Classifier.NextTurn(ctx, turns)
}

func toolError(detail string) string {
	payload, _ := json.Marshal(map[string]any{
		"error":     detail,
		"providers": []models.ProviderSummary{},
	})
	return string(payload)
}

// containsUrgency checks the new message and all prior turns for any
// urgency keyword, case-insensitive.
func containsUrgency(message string, history []models.ChatTurn) bool {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(message))
	for _, turn := range history {
		sb.WriteString(" ")
		sb.WriteString(strings.ToLower(turn.Content))
	}
	text := sb.String()
	for _, kw := range urgencyKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

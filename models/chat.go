// models/chat.go
package models

// ChatTurn is one tagged turn of a conversation. The conversation is an
// explicit ordered list of turns passed in and returned out each round;
// there is no hidden session state.
type ChatTurn struct {
	Role       string     `json:"role"` // "user", "assistant" or "tool"
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant turns only
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool turns only
	ToolName   string     `json:"tool_name,omitempty"`    // tool turns only
}

// ToolCall is a named capability invocation requested by the classifier,
// with a string-serialized JSON argument payload.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ProviderSummary is one ranked provider as surfaced to chat and search
// consumers. Price and Distance are filler values when the profile carries
// no rate; they are range-bounded mock data, not deterministic.
type ProviderSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	ServiceType string  `json:"service_type"`
	Rating      float64 `json:"rating"`
	TrustScore  float64 `json:"trust_score"`
	Price       float64 `json:"price"`
	Distance    float64 `json:"distance"`
}

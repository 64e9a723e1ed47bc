package shared

import (
	"time"
)

// TokenUsage is the token bill of a single model call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// IsZero reports whether the call consumed no tokens, which happens
// when a request failed before reaching the model.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0
}

// AgentMeta carries the operational metadata every agent call returns
// alongside its result, so callers can record it centrally.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}

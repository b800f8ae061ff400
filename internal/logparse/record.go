package logparse

import (
	"encoding/json"
	"time"
)

// Record is one conversation turn decoded from a session log line.
// Records are immutable once parsed.
type Record struct {
	Role      string
	Text      string
	Timestamp time.Time
	ToolUses  []ToolUse
	Usage     *TokenUsage
	Model     string
}

// ToolUse is one tool invocation found in an assistant turn. Input is kept
// raw: the shape varies per tool and the analysis layers never look inside.
type ToolUse struct {
	Name  string
	Input json.RawMessage
}

// TokenUsage carries the usage block attached to assistant turns.
type TokenUsage struct {
	InputTokens         int64
	OutputTokens        int64
	CacheCreationTokens int64
	CacheReadTokens     int64
}

func (r Record) IsUser() bool      { return r.Role == "user" }
func (r Record) IsAssistant() bool { return r.Role == "assistant" }

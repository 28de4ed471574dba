package domain

import (
	"encoding/json"
	"strings"
)

// RawEvent represents a single engine-native event decoded from the wire
// format: newline-delimited JSON objects with at least a "type" string field
// and otherwise engine-defined fields. Unknown types are preserved as-is so
// parsers can log and drop them (protocol forward-compatibility).
//
// The shape mirrors what the integrated CLIs actually emit; any field not
// present on the wire stays at its zero value.
type RawEvent struct {
	// Type is the raw event type (e.g. "start", "token", "tool").
	Type string `json:"type"`

	// Status qualifies tool events: "", "start", "end", or "error".
	Status string `json:"status,omitempty"`

	// Role is "user" or "assistant" on message events.
	Role string `json:"role,omitempty"`

	// Content is the message body on message events.
	Content string `json:"content,omitempty"`

	// Text is the token text on token/delta events.
	Text string `json:"text,omitempty"`

	// Delta is the fallback token text field some engines use.
	Delta string `json:"delta,omitempty"`

	// Error is the primary error description on error events.
	Error string `json:"error,omitempty"`

	// Message is the fallback error description on error events.
	Message string `json:"message,omitempty"`

	// Name is the tool name on tool events.
	Name string `json:"name,omitempty"`

	// Args is the primary tool input payload.
	Args json.RawMessage `json:"args,omitempty"`

	// Input is the fallback tool input payload.
	Input json.RawMessage `json:"input,omitempty"`

	// Result is the tool output on tool end events.
	Result string `json:"result,omitempty"`

	// Percent is an optional progress percentage.
	Percent *float64 `json:"percent,omitempty"`

	// SessionID is the engine-native session id, when reported.
	SessionID string `json:"session_id,omitempty"`

	// Reason explains session termination, when reported.
	Reason string `json:"reason,omitempty"`
}

// DecodeRawEvent parses one line of NDJSON into a RawEvent.
// Blank and malformed lines are dropped at this level: the second return
// value is false and the parser never sees them.
func DecodeRawEvent(line string) (*RawEvent, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	var ev RawEvent
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		return nil, false
	}
	return &ev, true
}

// ToolArgs returns the tool input as a key-value map.
// The first populated field wins: args, then input, then an empty map.
func (e *RawEvent) ToolArgs() map[string]any {
	for _, raw := range []json.RawMessage{e.Args, e.Input} {
		if len(raw) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err == nil && m != nil {
			return m
		}
	}
	return map[string]any{}
}

// ErrorMessage returns the best error description available:
// the error field, falling back to message, falling back to a generic
// unknown-error string.
func (e *RawEvent) ErrorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return "unknown engine error"
}

// TokenText returns the token content for token/delta events:
// the text field, falling back to delta, falling back to empty string.
func (e *RawEvent) TokenText() string {
	if e.Text != "" {
		return e.Text
	}
	return e.Delta
}

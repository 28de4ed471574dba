package domain

import "time"

// EventType identifies a canonical event variant.
type EventType string

// Canonical event types emitted by every engine adapter.
const (
	// EventSessionStart marks the beginning of a session run.
	EventSessionStart EventType = "session_start"

	// EventUserMessage echoes the user's prompt into the stream.
	EventUserMessage EventType = "user_message"

	// EventAssistantMessage carries assistant output, token-level when
	// IsPartial is true and a complete message when false.
	EventAssistantMessage EventType = "assistant_message"

	// EventToolCallStart marks the beginning of a tool invocation.
	EventToolCallStart EventType = "tool_call_start"

	// EventToolCallEnd marks the end of a tool invocation.
	EventToolCallEnd EventType = "tool_call_end"

	// EventProgress is a human-readable progress notification.
	EventProgress EventType = "progress"

	// EventError is a terminal failure notification.
	EventError EventType = "error"

	// EventSessionEnd marks the end of a session run.
	EventSessionEnd EventType = "session_end"
)

// AIEvent is the canonical, engine-agnostic notification consumed by the
// presentation layer. It is a tagged union: Type selects the variant and
// only the fields documented for that variant are meaningful.
//
// Ordering within a session is the emission order from the parser; there is
// no reordering or buffering beyond FIFO.
type AIEvent struct {
	// Type selects the variant.
	Type EventType `json:"type"`

	// Timestamp is when the event was produced.
	Timestamp time.Time `json:"timestamp"`

	// SessionID is set on session_start and session_end.
	SessionID string `json:"session_id,omitempty"`

	// Content is the message text for user_message and assistant_message.
	Content string `json:"content,omitempty"`

	// IsPartial is true for token-level assistant_message events.
	IsPartial bool `json:"is_partial,omitempty"`

	// Files lists paths attached to a user_message.
	Files []string `json:"files,omitempty"`

	// ToolName is the tool being invoked for tool_call_start/tool_call_end.
	ToolName string `json:"tool_name,omitempty"`

	// ToolArgs carries the tool input for tool_call_start.
	ToolArgs map[string]any `json:"tool_args,omitempty"`

	// ToolResult carries the tool output for tool_call_end, if any.
	ToolResult string `json:"tool_result,omitempty"`

	// Success reports the tool outcome for tool_call_end.
	Success bool `json:"success,omitempty"`

	// Message is the text for progress and error events.
	Message string `json:"message,omitempty"`

	// Percent is the optional completion percentage for progress events.
	Percent *float64 `json:"percent,omitempty"`

	// Reason explains why the session ended for session_end.
	Reason string `json:"reason,omitempty"`
}

// IsTerminal reports whether the event ends a session run.
// Exactly one terminal event closes every complete run.
func (e AIEvent) IsTerminal() bool {
	return e.Type == EventSessionEnd || e.Type == EventError
}

// NewSessionStartEvent creates a session_start event.
func NewSessionStartEvent(sessionID string) AIEvent {
	return AIEvent{Type: EventSessionStart, Timestamp: time.Now(), SessionID: sessionID}
}

// NewUserMessageEvent creates a user_message event echoing the prompt.
func NewUserMessageEvent(content string, files []string) AIEvent {
	return AIEvent{Type: EventUserMessage, Timestamp: time.Now(), Content: content, Files: files}
}

// NewAssistantMessageEvent creates an assistant_message event.
// isPartial must always be stated explicitly: true for token-level deltas,
// false for complete messages.
func NewAssistantMessageEvent(content string, isPartial bool) AIEvent {
	return AIEvent{Type: EventAssistantMessage, Timestamp: time.Now(), Content: content, IsPartial: isPartial}
}

// NewToolCallStartEvent creates a tool_call_start event.
func NewToolCallStartEvent(name string, args map[string]any) AIEvent {
	if args == nil {
		args = map[string]any{}
	}
	return AIEvent{Type: EventToolCallStart, Timestamp: time.Now(), ToolName: name, ToolArgs: args}
}

// NewToolCallEndEvent creates a tool_call_end event.
func NewToolCallEndEvent(name, result string, success bool) AIEvent {
	return AIEvent{Type: EventToolCallEnd, Timestamp: time.Now(), ToolName: name, ToolResult: result, Success: success}
}

// NewProgressEvent creates a progress event. percent may be nil when the
// engine reports no completion estimate.
func NewProgressEvent(message string, percent *float64) AIEvent {
	return AIEvent{Type: EventProgress, Timestamp: time.Now(), Message: message, Percent: percent}
}

// NewErrorEvent creates a terminal error event.
func NewErrorEvent(message string) AIEvent {
	return AIEvent{Type: EventError, Timestamp: time.Now(), Message: message}
}

// NewSessionEndEvent creates a session_end event.
func NewSessionEndEvent(sessionID, reason string) AIEvent {
	return AIEvent{Type: EventSessionEnd, Timestamp: time.Now(), SessionID: sessionID, Reason: reason}
}

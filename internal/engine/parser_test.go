package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitworks/conduit/internal/domain"
)

// parseLine decodes one raw NDJSON line and runs it through the parser.
func parseLine(t *testing.T, p EventParser, line string) []domain.AIEvent {
	t.Helper()
	raw, ok := domain.DecodeRawEvent(line)
	require.True(t, ok, "line should decode: %s", line)
	return p.Parse(raw)
}

func TestStreamParser_SessionLifecycle(t *testing.T) {
	t.Run("start maps to session_start", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"start","session_id":"session-abc"}`)
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventSessionStart, events[0].Type)
		assert.Equal(t, "session-abc", events[0].SessionID)
	})

	t.Run("end maps to session_end with reason completed", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"end","session_id":"session-abc"}`)
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventSessionEnd, events[0].Type)
		assert.Equal(t, "completed", events[0].Reason)
	})

	t.Run("complete is an end alias", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"complete"}`)
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventSessionEnd, events[0].Type)
	})

	t.Run("end echoes session id captured at start", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		parseLine(t, p, `{"type":"start","session_id":"session-abc"}`)
		events := parseLine(t, p, `{"type":"end"}`)
		require.Len(t, events, 1)
		assert.Equal(t, "session-abc", events[0].SessionID)
	})

	t.Run("reset forgets the captured session id", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		parseLine(t, p, `{"type":"start","session_id":"session-abc"}`)
		p.Reset()
		events := parseLine(t, p, `{"type":"end"}`)
		require.Len(t, events, 1)
		assert.Empty(t, events[0].SessionID)
	})
}

func TestStreamParser_Messages(t *testing.T) {
	t.Run("assistant message is complete", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"message","role":"assistant","content":"done"}`)
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventAssistantMessage, events[0].Type)
		assert.Equal(t, "done", events[0].Content)
		assert.False(t, events[0].IsPartial)
	})

	t.Run("user message maps to user_message", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"message","role":"user","content":"hi"}`)
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventUserMessage, events[0].Type)
		assert.Equal(t, "hi", events[0].Content)
	})

	t.Run("unknown role is dropped", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"message","role":"system","content":"x"}`)
		assert.Empty(t, events)
	})

	t.Run("token maps to partial assistant message", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"token","text":"Hel"}`)
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventAssistantMessage, events[0].Type)
		assert.Equal(t, "Hel", events[0].Content)
		assert.True(t, events[0].IsPartial)
	})

	t.Run("delta falls back to delta field", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"delta","delta":"lo"}`)
		require.Len(t, events, 1)
		assert.Equal(t, "lo", events[0].Content)
		assert.True(t, events[0].IsPartial)
	})
}

func TestStreamParser_Errors(t *testing.T) {
	t.Run("error field wins", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"error","error":"rate limited"}`)
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventError, events[0].Type)
		assert.Equal(t, "rate limited", events[0].Message)
	})

	t.Run("generic message when wire carries none", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"error"}`)
		require.Len(t, events, 1)
		assert.Equal(t, "unknown engine error", events[0].Message)
	})
}

func TestStreamParser_ToolLifecycle(t *testing.T) {
	t.Run("tool start yields progress then tool_call_start", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"tool","status":"start","name":"grep","args":{"pattern":"foo"}}`)
		require.Len(t, events, 2)
		assert.Equal(t, domain.EventProgress, events[0].Type)
		assert.Equal(t, "calling tool: grep", events[0].Message)
		assert.Equal(t, domain.EventToolCallStart, events[1].Type)
		assert.Equal(t, "grep", events[1].ToolName)
		assert.Equal(t, map[string]any{"pattern": "foo"}, events[1].ToolArgs)

		require.Len(t, p.ToolCalls().List(), 1)
		assert.Equal(t, domain.ToolCallRunning, p.ToolCalls().List()[0].Status)
	})

	t.Run("missing status means start", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"tool","name":"grep"}`)
		require.Len(t, events, 2)
		assert.Equal(t, domain.EventToolCallStart, events[1].Type)
	})

	t.Run("tool end completes the tracked call", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		parseLine(t, p, `{"type":"tool","status":"start","name":"grep"}`)
		events := parseLine(t, p, `{"type":"tool","status":"end","name":"grep","result":"3 matches"}`)
		require.Len(t, events, 2)
		assert.Equal(t, "tool finished: grep", events[0].Message)
		assert.Equal(t, domain.EventToolCallEnd, events[1].Type)
		assert.True(t, events[1].Success)
		assert.Equal(t, "3 matches", events[1].ToolResult)

		calls := p.ToolCalls().List()
		require.Len(t, calls, 1)
		assert.Equal(t, domain.ToolCallCompleted, calls[0].Status)
	})

	t.Run("tool error fails the tracked call", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		parseLine(t, p, `{"type":"tool","status":"start","name":"bash"}`)
		events := parseLine(t, p, `{"type":"tool","status":"error","name":"bash","result":"exit 1"}`)
		require.Len(t, events, 2)
		assert.Equal(t, "tool failed: bash", events[0].Message)
		assert.Equal(t, domain.EventToolCallEnd, events[1].Type)
		assert.False(t, events[1].Success)

		calls := p.ToolCalls().List()
		require.Len(t, calls, 1)
		assert.Equal(t, domain.ToolCallFailed, calls[0].Status)
	})

	t.Run("tool end without start still emits events", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"tool","status":"end","name":"grep"}`)
		require.Len(t, events, 2)
		assert.Equal(t, domain.EventToolCallEnd, events[1].Type)
	})

	t.Run("tool_call is a tool alias", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"tool_call","status":"start","name":"read"}`)
		require.Len(t, events, 2)
		assert.Equal(t, domain.EventToolCallStart, events[1].Type)
	})

	t.Run("unknown tool status is dropped", func(t *testing.T) {
		p := NewStreamParser(zerolog.Nop())

		events := parseLine(t, p, `{"type":"tool","status":"paused","name":"read"}`)
		assert.Empty(t, events)
	})
}

func TestStreamParser_UnknownTypes(t *testing.T) {
	p := NewStreamParser(zerolog.Nop())

	assert.Empty(t, parseLine(t, p, `{"type":"heartbeat"}`))
	assert.Empty(t, parseLine(t, p, `{"type":"future_event","payload":"x"}`))
	assert.Nil(t, p.Parse(nil))
}

func TestStreamParser_Determinism(t *testing.T) {
	lines := []string{
		`{"type":"start","session_id":"session-abc"}`,
		`{"type":"token","text":"Hel"}`,
		`{"type":"token","text":"lo"}`,
		`{"type":"tool","status":"start","name":"grep"}`,
		`{"type":"tool","status":"end","name":"grep","result":"ok"}`,
		`{"type":"message","role":"assistant","content":"Hello"}`,
		`{"type":"end"}`,
	}

	run := func() []domain.AIEvent {
		p := NewStreamParser(zerolog.Nop())
		var events []domain.AIEvent
		for _, line := range lines {
			events = append(events, parseLine(t, p, line)...)
		}
		return events
	}

	first := run()
	second := run()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type, "event %d type", i)
		assert.Equal(t, first[i].Content, second[i].Content, "event %d content", i)
		assert.Equal(t, first[i].Message, second[i].Message, "event %d message", i)
	}
}

func TestStreamParser_ThreeLinesThreeEvents(t *testing.T) {
	p := NewStreamParser(zerolog.Nop())
	lines := []string{
		`{"type":"start","session_id":"session-abc"}`,
		`{"type":"message","role":"assistant","content":"hi"}`,
		`{"type":"end"}`,
	}

	var events []domain.AIEvent
	for _, line := range lines {
		events = append(events, parseLine(t, p, line)...)
	}

	require.Len(t, events, 3)
	assert.Equal(t, domain.EventSessionStart, events[0].Type)
	assert.Equal(t, domain.EventAssistantMessage, events[1].Type)
	assert.Equal(t, domain.EventSessionEnd, events[2].Type)
}

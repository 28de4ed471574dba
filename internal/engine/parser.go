package engine

import (
	"github.com/rs/zerolog"

	"github.com/conduitworks/conduit/internal/domain"
)

// EventParser is the stateful translator from engine-native raw events to
// canonical events. One instance exists per session and is never shared.
//
// Parse returns zero or more canonical events per raw event. For a fixed
// sequence of raw inputs the concatenated output is deterministic given
// sequence order, except for generated tool-call ids.
type EventParser interface {
	// Parse translates one raw event into its canonical events.
	Parse(raw *domain.RawEvent) []domain.AIEvent

	// Reset clears parser state, including tracked tool calls. Called when
	// a session is about to be reused or disposed.
	Reset()

	// ToolCalls exposes the parser's tool call manager for inspection.
	ToolCalls() *ToolCallManager
}

// streamParser implements the reference wire mapping shared by the
// integrated CLIs. Engines that speak the common stream-json dialect reuse
// it directly; an engine with a divergent dialect supplies its own
// EventParser.
type streamParser struct {
	tools  *ToolCallManager
	logger zerolog.Logger

	// sessionID is the engine-native id captured from a raw start event,
	// echoed back on session_end when the end event carries none.
	sessionID string
}

// NewStreamParser creates a parser for the common stream-json dialect.
func NewStreamParser(logger zerolog.Logger) EventParser {
	return &streamParser{
		tools:  NewToolCallManager(),
		logger: logger,
	}
}

// Parse maps one raw event to its canonical events:
//
//	start                  -> session_start
//	end | complete         -> session_end (reason "completed")
//	error                  -> error (error field, then message, then generic)
//	message role assistant -> assistant_message (complete)
//	message role user      -> user_message
//	token | delta          -> assistant_message (partial; text, then delta)
//	tool | tool_call       -> progress + tool_call_start/tool_call_end,
//	                          driven by the status field
//
// Unknown raw types are logged and produce zero events, never a failure:
// protocol forward-compatibility.
func (p *streamParser) Parse(raw *domain.RawEvent) []domain.AIEvent {
	if raw == nil {
		return nil
	}

	switch raw.Type {
	case "start":
		p.sessionID = raw.SessionID
		return []domain.AIEvent{domain.NewSessionStartEvent(raw.SessionID)}

	case "end", "complete":
		return []domain.AIEvent{domain.NewSessionEndEvent(p.endSessionID(raw), "completed")}

	case "error":
		return []domain.AIEvent{domain.NewErrorEvent(raw.ErrorMessage())}

	case "message":
		return p.parseMessage(raw)

	case "token", "delta":
		return []domain.AIEvent{domain.NewAssistantMessageEvent(raw.TokenText(), true)}

	case "tool", "tool_call":
		return p.parseTool(raw)

	default:
		p.logger.Debug().
			Str("raw_type", raw.Type).
			Msg("unknown raw event type, dropping")
		return nil
	}
}

// parseMessage maps role-dependent message events.
func (p *streamParser) parseMessage(raw *domain.RawEvent) []domain.AIEvent {
	switch raw.Role {
	case "assistant":
		return []domain.AIEvent{domain.NewAssistantMessageEvent(raw.Content, false)}
	case "user":
		return []domain.AIEvent{domain.NewUserMessageEvent(raw.Content, nil)}
	default:
		p.logger.Debug().
			Str("role", raw.Role).
			Msg("unknown message role, dropping")
		return nil
	}
}

// parseTool maps tool lifecycle events. A start registers the call as
// running in the manager; end/error transition it and report the outcome.
// Each raw tool event yields a progress event followed by the tool event.
func (p *streamParser) parseTool(raw *domain.RawEvent) []domain.AIEvent {
	switch raw.Status {
	case "", "start":
		args := raw.ToolArgs()
		p.tools.Register(raw.Name, args)
		return []domain.AIEvent{
			domain.NewProgressEvent("calling tool: "+raw.Name, raw.Percent),
			domain.NewToolCallStartEvent(raw.Name, args),
		}

	case "end":
		if _, ok := p.tools.Complete(raw.Name, raw.Result); !ok {
			p.logger.Debug().Str("tool", raw.Name).Msg("tool end without matching start")
		}
		return []domain.AIEvent{
			domain.NewProgressEvent("tool finished: "+raw.Name, raw.Percent),
			domain.NewToolCallEndEvent(raw.Name, raw.Result, true),
		}

	case "error":
		if _, ok := p.tools.Fail(raw.Name, raw.Result); !ok {
			p.logger.Debug().Str("tool", raw.Name).Msg("tool error without matching start")
		}
		return []domain.AIEvent{
			domain.NewProgressEvent("tool failed: "+raw.Name, raw.Percent),
			domain.NewToolCallEndEvent(raw.Name, raw.Result, false),
		}

	default:
		p.logger.Debug().
			Str("tool", raw.Name).
			Str("status", raw.Status).
			Msg("unknown tool status, dropping")
		return nil
	}
}

// endSessionID prefers the id on the end event itself, falling back to the
// one captured at start.
func (p *streamParser) endSessionID(raw *domain.RawEvent) string {
	if raw.SessionID != "" {
		return raw.SessionID
	}
	return p.sessionID
}

// Reset clears tracked tool calls and the captured session id.
func (p *streamParser) Reset() {
	p.tools.Clear()
	p.sessionID = ""
}

// ToolCalls exposes the manager for inspection.
func (p *streamParser) ToolCalls() *ToolCallManager {
	return p.tools
}

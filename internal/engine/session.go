package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conduitworks/conduit/internal/ctxutil"
	"github.com/conduitworks/conduit/internal/domain"
	conduiterrors "github.com/conduitworks/conduit/internal/errors"
)

// SessionStatus is the session state machine:
// idle -> running -> idle on completion, and any state -> disposed
// (terminal, irreversible).
type SessionStatus string

// Session status constants.
const (
	// SessionIdle means no task is running; Run may be called.
	SessionIdle SessionStatus = "idle"

	// SessionRunning means a task is in flight.
	SessionRunning SessionStatus = "running"

	// SessionDisposed means the session is permanently unusable.
	SessionDisposed SessionStatus = "disposed"
)

// TaskExecutor is the engine-specific strategy a Session delegates to.
// It spawns the external process through the launcher collaborator and
// feeds parsed canonical events back through the returned channel, which
// it closes when the process's output is exhausted.
type TaskExecutor interface {
	// ExecuteTask starts the external process for the task and returns the
	// parsed event sequence. A returned error means the process never ran.
	ExecuteTask(ctx context.Context, task *domain.AITask) (<-chan domain.AIEvent, error)

	// AbortTask terminates the running external process, if any.
	AbortTask() error

	// DisposeResources releases everything the executor holds.
	DisposeResources()
}

// Session is one task-execution context bound to one external process per
// run. It owns the parser instance, the event stream, and (through its
// executor) the process handle. A Session runs at most one task at a time;
// a non-disposed Session is reusable for subsequent runs.
type Session struct {
	id       string
	engineID string
	parser   EventParser
	exec     TaskExecutor
	logger   zerolog.Logger

	mu            sync.Mutex
	status        SessionStatus
	currentTaskID string
	aborted       bool
	stream        *EventStream
}

// NewSession creates an idle session with a generated id.
// Engines call this from CreateSession; tests may construct sessions with
// mock executors directly.
func NewSession(engineID string, parser EventParser, exec TaskExecutor, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:       id,
		engineID: engineID,
		parser:   parser,
		exec:     exec,
		logger:   logger.With().Str("session_id", id).Str("engine_id", engineID).Logger(),
		status:   SessionIdle,
	}
}

// ID returns the session's immutable generated id.
func (s *Session) ID() string { return s.id }

// EngineID returns the owning engine's id.
func (s *Session) EngineID() string { return s.engineID }

// Status returns the current state machine position.
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Run executes one task and returns its event stream.
//
// The stream yields session_start first, user_message when the prompt is
// non-empty, then the executor's events in FIFO order until the first
// terminal event (session_end or error). Events buffered behind a terminal
// event are intentionally dropped, consistently across engines. Any failure
// while producing the sequence becomes one synthesized terminal error event
// rather than a propagated error.
//
// Run fails immediately with ErrSessionDisposed after Dispose, and with
// ErrSessionBusy while another task is running.
func (s *Session) Run(ctx context.Context, task *domain.AITask) (*EventStream, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task", conduiterrors.ErrEmptyValue)
	}

	s.mu.Lock()
	switch s.status {
	case SessionDisposed:
		s.mu.Unlock()
		return nil, conduiterrors.ErrSessionDisposed
	case SessionRunning:
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: task %s still running", conduiterrors.ErrSessionBusy, s.currentTaskID)
	case SessionIdle:
	}
	s.status = SessionRunning
	s.currentTaskID = task.ID
	s.aborted = false
	stream := newEventStream()
	s.stream = stream
	s.mu.Unlock()

	// Leftover tool-call state from a previous run must not leak into
	// this one.
	s.parser.Reset()

	s.logger.Debug().Str("task_id", task.ID).Str("kind", task.Kind.String()).Msg("task run starting")

	go s.runLoop(ctx, task, stream)
	return stream, nil
}

// runLoop produces the event sequence for one run. It owns every exit path:
// normal completion, executor failure, abort, and panic all end with the
// stream closed and the session back in a non-running state.
func (s *Session) runLoop(ctx context.Context, task *domain.AITask, stream *EventStream) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("task run panicked")
			stream.push(domain.NewErrorEvent(fmt.Sprintf("internal error: %v", r)))
		}
		s.finishRun(stream)
	}()

	stream.push(domain.NewSessionStartEvent(s.id))
	if task.Input.Prompt != "" {
		stream.push(domain.NewUserMessageEvent(task.Input.Prompt, task.Input.Files))
	}

	events, err := s.exec.ExecuteTask(ctx, task)
	if err != nil {
		s.logger.Warn().Err(err).Str("task_id", task.ID).Msg("task execution failed to start")
		stream.push(domain.NewErrorEvent(err.Error()))
		return
	}

	sawTerminal := false
	for ev := range events {
		// The run's own session_start was already emitted; a raw start
		// event from the wire must not produce a second one.
		if ev.Type == domain.EventSessionStart {
			continue
		}
		if ev.IsTerminal() {
			stream.push(ev)
			sawTerminal = true
			// Stop forwarding: events queued behind a terminal event are
			// dropped. Drain in the background so the producer can exit.
			go func() {
				for range events {
				}
			}()
			break
		}
		if !stream.push(ev) {
			// Stream closed under us (dispose); let the producer drain.
			go func() {
				for range events {
				}
			}()
			return
		}
	}

	if !sawTerminal {
		// The process output ended without a terminal event: exited
		// quietly or was terminated. Close the run with exactly one
		// terminal event either way.
		reason := "completed"
		if s.wasAborted() {
			reason = "aborted"
		}
		stream.push(domain.NewSessionEndEvent(s.id, reason))
	}
}

// finishRun returns the session to idle (unless disposed meanwhile) and
// completes the stream.
func (s *Session) finishRun(stream *EventStream) {
	s.mu.Lock()
	if s.status == SessionRunning {
		s.status = SessionIdle
		s.currentTaskID = ""
	}
	s.mu.Unlock()

	stream.close()
	s.logger.Debug().Msg("task run finished")
}

// Abort interrupts the running task.
//
// When taskID is non-empty and does not match the current task the call is
// a no-op with a logged warning: only one task can be current per session.
// Aborting a session with nothing running is also a no-op. Otherwise the
// external process is terminated; the consumer observes the stream end
// asynchronously, bounded by the process's actual exit.
func (s *Session) Abort(taskID string) error {
	s.mu.Lock()
	if s.status != SessionRunning {
		s.mu.Unlock()
		s.logger.Warn().Str("task_id", taskID).Msg("abort requested with no running task")
		return nil
	}
	if taskID != "" && taskID != s.currentTaskID {
		current := s.currentTaskID
		s.mu.Unlock()
		s.logger.Warn().
			Str("requested_task_id", taskID).
			Str("current_task_id", current).
			Msg("abort requested for task that is not current")
		return nil
	}
	s.aborted = true
	s.mu.Unlock()

	s.logger.Info().Str("task_id", taskID).Msg("aborting task")
	return s.exec.AbortTask()
}

// Dispose permanently retires the session: terminates any running process,
// clears the parser's tool-call state, completes the stream, and pins the
// status to disposed. Idempotent; after Dispose, Run always fails.
func (s *Session) Dispose() {
	s.mu.Lock()
	if s.status == SessionDisposed {
		s.mu.Unlock()
		return
	}
	wasRunning := s.status == SessionRunning
	s.status = SessionDisposed
	stream := s.stream
	s.mu.Unlock()

	if wasRunning {
		if err := s.exec.AbortTask(); err != nil {
			s.logger.Debug().Err(err).Msg("abort during dispose")
		}
	}
	s.exec.DisposeResources()
	s.parser.Reset()
	if stream != nil {
		stream.close()
	}

	s.logger.Debug().Msg("session disposed")
}

// wasAborted reports whether Abort was called for the current run.
func (s *Session) wasAborted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aborted
}

// ToolCalls exposes the session's tool call bookkeeping for inspection.
func (s *Session) ToolCalls() *ToolCallManager {
	return s.parser.ToolCalls()
}

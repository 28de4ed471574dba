package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/conduitworks/conduit/internal/constants"
	"github.com/conduitworks/conduit/internal/domain"
	conduiterrors "github.com/conduitworks/conduit/internal/errors"
)

// EventStream is the pull side of a session run: a bounded FIFO queue fed
// by the session's producer goroutine and drained by one consumer.
//
// Next blocks while the queue is empty, waking when the producer pushes,
// the stream closes, the context ends, or the periodic liveness timer
// fires. The timer is a safeguard against an external process that stalls
// with no output and never exits; it re-checks completion state rather
// than imposing a hard deadline.
type EventStream struct {
	ch        chan domain.AIEvent
	done      chan struct{}
	closeOnce sync.Once
}

// newEventStream creates a stream with the standard bounded queue.
func newEventStream() *EventStream {
	return &EventStream{
		ch:   make(chan domain.AIEvent, constants.EventQueueSize),
		done: make(chan struct{}),
	}
}

// push enqueues an event, blocking while the queue is full.
// Returns false when the stream has closed and the event was dropped.
func (s *EventStream) push(ev domain.AIEvent) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.ch <- ev:
		return true
	case <-s.done:
		return false
	}
}

// close marks the stream complete. Idempotent.
func (s *EventStream) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Next returns the next event in FIFO order.
// It returns ErrStreamClosed once the stream is complete and drained, or
// the context error if ctx ends first.
func (s *EventStream) Next(ctx context.Context) (domain.AIEvent, error) {
	ticker := time.NewTicker(constants.StreamWakeInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-s.ch:
			return ev, nil
		case <-ctx.Done():
			return domain.AIEvent{}, ctx.Err()
		case <-s.done:
			// Closed, but buffered events are still delivered in order.
			select {
			case ev := <-s.ch:
				return ev, nil
			default:
				return domain.AIEvent{}, conduiterrors.ErrStreamClosed
			}
		case <-ticker.C:
			// Liveness wake: loop around and re-check completion state.
		}
	}
}

// Collect drains the stream into a slice, stopping at close or context end.
// Intended for tests and synchronous callers.
func (s *EventStream) Collect(ctx context.Context) ([]domain.AIEvent, error) {
	var events []domain.AIEvent
	for {
		ev, err := s.Next(ctx)
		if err != nil {
			if errors.Is(err, conduiterrors.ErrStreamClosed) {
				return events, nil
			}
			return events, err
		}
		events = append(events, ev)
	}
}

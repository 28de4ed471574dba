package engine

import (
	"bufio"
	"context"
	"io"
	"regexp"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/conduitworks/conduit/internal/constants"
	"github.com/conduitworks/conduit/internal/domain"
)

// engineSessionIDPattern matches the engine-native session id some CLIs
// print on stderr (e.g. "session-3f6c2c0e-...").
var engineSessionIDPattern = regexp.MustCompile(`session-[a-f0-9-]+`)

// commandSpec is what an engine contributes per invocation: everything
// except the executable path, which comes from the engine's config record.
type commandSpec struct {
	Args  []string
	Env   []string
	Stdin string
	Dir   string
}

// commandBuilder translates a task into the engine's CLI invocation.
type commandBuilder func(task *domain.AITask) commandSpec

// cliExecutor is the TaskExecutor shared by the CLI-backed engines. Each
// engine injects only its command builder and parser; the process plumbing
// (spawn, line pump, stderr scan, termination) is identical across engines.
type cliExecutor struct {
	engineID    string
	cliPath     string
	build       commandBuilder
	launcher    Launcher
	parser      EventParser
	logger      zerolog.Logger
	scanSession bool

	mu     sync.Mutex
	handle ProcessHandle
	done   chan struct{}
}

// ExecuteTask spawns the engine CLI for the task and returns the parsed
// canonical event sequence. The returned channel closes when the process's
// output is exhausted.
func (e *cliExecutor) ExecuteTask(ctx context.Context, task *domain.AITask) (<-chan domain.AIEvent, error) {
	// A previous run's process can outlive its terminal event; its pump is
	// still draining and reaping it. Launching over it would let the old
	// cleanup clobber this run's handle and the old output pollute this
	// run's parser state, so wait it out first.
	e.mu.Lock()
	prev := e.done
	e.mu.Unlock()
	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		// Anything the old pump parsed after the session's reset is
		// leftover state, not this run's.
		e.parser.Reset()
	}

	spec := e.build(task)

	handle, err := e.launcher.Launch(ctx, LaunchSpec{
		Path:  e.cliPath,
		Args:  spec.Args,
		Dir:   spec.Dir,
		Env:   spec.Env,
		Stdin: spec.Stdin,
	})
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	e.mu.Lock()
	e.handle = handle
	e.done = done
	e.mu.Unlock()

	out := make(chan domain.AIEvent, constants.EventQueueSize)
	go e.pump(ctx, handle, out, done)
	return out, nil
}

// pump reads the process's output until EOF, feeding stdout lines through
// the parser and scanning stderr for out-of-band information. It closes the
// event channel once both streams are drained and the process is reaped.
func (e *cliExecutor) pump(ctx context.Context, handle ProcessHandle, out chan<- domain.AIEvent, done chan<- struct{}) {
	defer func() {
		if err := handle.Wait(); err != nil {
			e.logger.Debug().Err(err).Msg("engine process exited with error")
		}
		e.mu.Lock()
		// Clear only our own handle; a newer run may have installed its
		// handle while this process was being reaped.
		if e.handle == handle {
			e.handle = nil
		}
		e.mu.Unlock()
		close(out)
		close(done)
	}()

	var g errgroup.Group
	g.Go(func() error {
		e.pumpStdout(ctx, handle.Output(), out)
		return nil
	})
	g.Go(func() error {
		e.pumpStderr(ctx, handle.Stderr(), out)
		return nil
	})
	_ = g.Wait()
}

// pumpStdout translates raw NDJSON lines into canonical events.
// Malformed lines are discarded here, before the parser ever sees them.
func (e *cliExecutor) pumpStdout(ctx context.Context, r io.Reader, out chan<- domain.AIEvent) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), constants.MaxLineSize)

	for scanner.Scan() {
		raw, ok := domain.DecodeRawEvent(scanner.Text())
		if !ok {
			continue
		}
		for _, ev := range e.parser.Parse(raw) {
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
	if err := scanner.Err(); err != nil {
		e.logger.Debug().Err(err).Msg("engine stdout read ended")
	}
}

// pumpStderr logs stderr lines and surfaces the engine-native session id as
// a progress event when the engine reports one there.
func (e *cliExecutor) pumpStderr(ctx context.Context, r io.Reader, out chan<- domain.AIEvent) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), constants.MaxLineSize)

	reported := false
	for scanner.Scan() {
		line := scanner.Text()
		e.logger.Debug().Str("engine_id", e.engineID).Str("stderr", line).Msg("engine stderr")

		if !e.scanSession || reported {
			continue
		}
		if id := engineSessionIDPattern.FindString(line); id != "" {
			reported = true
			select {
			case out <- domain.NewProgressEvent("engine session "+id, nil):
			case <-ctx.Done():
				return
			}
		}
	}
}

// AbortTask terminates the running process, if any. Aborting with nothing
// in flight is a logged no-op: the process may have exited on its own.
func (e *cliExecutor) AbortTask() error {
	e.mu.Lock()
	handle := e.handle
	e.mu.Unlock()

	if handle == nil {
		e.logger.Debug().Str("engine_id", e.engineID).Msg("abort with no live process")
		return nil
	}
	return handle.Terminate()
}

// DisposeResources terminates any live process.
func (e *cliExecutor) DisposeResources() {
	e.mu.Lock()
	handle := e.handle
	e.handle = nil
	e.mu.Unlock()

	if handle != nil {
		_ = handle.Terminate()
	}
}

// Compile-time check that cliExecutor implements TaskExecutor.
var _ TaskExecutor = (*cliExecutor)(nil)

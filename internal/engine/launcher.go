package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/conduitworks/conduit/internal/constants"
	conduiterrors "github.com/conduitworks/conduit/internal/errors"
)

// LaunchSpec describes one external CLI invocation.
type LaunchSpec struct {
	// Path is the executable path or bare command name.
	Path string

	// Args is the argument list, excluding the command itself.
	Args []string

	// Dir is the working directory. Empty means inherit.
	Dir string

	// Env lists extra KEY=VALUE entries appended to the parent environment.
	Env []string

	// Stdin is written to the process's standard input, then closed.
	Stdin string
}

// ProcessHandle is what the core gets back from a launcher: a line-oriented
// readable output stream plus termination. The transport behind it is not
// the core's concern.
type ProcessHandle interface {
	// Output is the process's standard output stream.
	Output() io.Reader

	// Stderr is the process's standard error stream. Engines use it for
	// out-of-band information such as engine-native session ids.
	Stderr() io.Reader

	// Terminate requests the process stop. Safe to call more than once.
	Terminate() error

	// Wait blocks until the process exits and releases its resources.
	Wait() error
}

// Launcher is the process-launcher collaborator. The production
// implementation spawns OS processes; tests substitute fakes.
type Launcher interface {
	Launch(ctx context.Context, spec LaunchSpec) (ProcessHandle, error)
}

// ExecLauncher is the production Launcher backed by os/exec.
type ExecLauncher struct {
	logger zerolog.Logger
}

// NewExecLauncher creates an ExecLauncher.
func NewExecLauncher(logger zerolog.Logger) *ExecLauncher {
	return &ExecLauncher{logger: logger}
}

// Launch starts the process and returns a handle over its pipes.
func (l *ExecLauncher) Launch(ctx context.Context, spec LaunchSpec) (ProcessHandle, error) {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...) //nolint:gosec // Path comes from validated engine config
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	cmd.Env = append(os.Environ(), spec.Env...)
	if spec.Stdin != "" {
		cmd.Stdin = strings.NewReader(spec.Stdin)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", conduiterrors.ErrProcessSpawn, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", conduiterrors.ErrProcessSpawn, err)
	}

	if startErr := cmd.Start(); startErr != nil {
		return nil, fmt.Errorf("%w: %s: %w", conduiterrors.ErrProcessSpawn, spec.Path, startErr)
	}

	l.logger.Debug().
		Str("path", spec.Path).
		Strs("args", spec.Args).
		Int("pid", cmd.Process.Pid).
		Msg("process started")

	return &execHandle{cmd: cmd, stdout: stdout, stderr: stderr, logger: l.logger}, nil
}

// execHandle wraps a started exec.Cmd.
type execHandle struct {
	cmd    *exec.Cmd
	stdout io.Reader
	stderr io.Reader
	logger zerolog.Logger

	termOnce sync.Once
}

func (h *execHandle) Output() io.Reader { return h.stdout }
func (h *execHandle) Stderr() io.Reader { return h.stderr }

// Terminate sends SIGTERM, waits a grace period, then kills the process
// outright if it is still alive.
func (h *execHandle) Terminate() error {
	if h.cmd.Process == nil {
		return conduiterrors.ErrProcessNotRunning
	}

	h.termOnce.Do(func() {
		pid := h.cmd.Process.Pid
		if err := h.cmd.Process.Signal(syscall.SIGTERM); err != nil {
			h.logger.Debug().Err(err).Int("pid", pid).Msg("term signal failed, killing")
			_ = h.cmd.Process.Kill()
			return
		}

		// Give the CLI a moment to flush and exit cleanly before the kill.
		// Kill on an already-exited process is a harmless ErrProcessDone.
		time.AfterFunc(constants.TerminateGracePeriod, func() {
			_ = h.cmd.Process.Kill()
		})
		h.logger.Debug().Int("pid", pid).Msg("termination requested")
	})
	return nil
}

// Wait blocks until the process exits.
func (h *execHandle) Wait() error {
	return h.cmd.Wait()
}

// Compile-time check that ExecLauncher implements Launcher.
var _ Launcher = (*ExecLauncher)(nil)

// Package engine provides the conduit engine abstraction and event
// normalization layer: the task/session/event contracts, per-engine
// adapters that translate a raw CLI's line-oriented output into canonical
// events, and the registry that manages engine lifecycle.
//
// IMPORTANT: This package may import internal/constants, internal/errors,
// internal/config, internal/ctxutil, and internal/domain. It MUST NOT
// import internal/template or internal/cli.
package engine

import (
	"context"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"

	"github.com/conduitworks/conduit/internal/config"
	"github.com/conduitworks/conduit/internal/constants"
	"github.com/conduitworks/conduit/internal/domain"
)

// Engine integrates one external AI command-line tool: a session factory
// plus a capability descriptor and lifecycle hooks. Engines live for the
// whole process and are owned by the Registry.
type Engine interface {
	// ID is the stable identifier used for registration and task routing.
	ID() string

	// Name is the human-readable engine name.
	Name() string

	// Capabilities returns the static capability descriptor. Fixed at
	// construction; configuration updates never mutate it.
	Capabilities() domain.EngineCapabilities

	// CreateSession creates a new idle session bound to this engine's
	// adapter.
	CreateSession(ctx context.Context) (*Session, error)

	// IsAvailable probes whether the external executable is reachable.
	// It never fails: any probe error converts to false.
	IsAvailable(ctx context.Context) bool

	// Initialize prepares the engine, returning true on success.
	// Idempotent: returns true immediately when already initialized;
	// otherwise checks availability and flips an internal flag.
	Initialize(ctx context.Context) bool

	// Cleanup resets the initialized flag. Idempotent.
	Cleanup()
}

// baseEngine carries the identity, capability, and lifecycle plumbing
// shared by every adapter. Embed it and provide the session wiring.
type baseEngine struct {
	id     string
	name   string
	caps   domain.EngineCapabilities
	cfg    config.EngineConfig
	logger zerolog.Logger

	mu          sync.Mutex
	initialized bool
}

func (b *baseEngine) ID() string   { return b.id }
func (b *baseEngine) Name() string { return b.name }

func (b *baseEngine) Capabilities() domain.EngineCapabilities { return b.caps }

// IsAvailable probes for the configured CLI executable. A missing binary or
// a failing version probe both report false; nothing escapes as an error.
func (b *baseEngine) IsAvailable(ctx context.Context) bool {
	path, err := exec.LookPath(b.cfg.CLIPath)
	if err != nil {
		b.logger.Debug().Str("cli_path", b.cfg.CLIPath).Err(err).Msg("engine CLI not found")
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, constants.AvailabilityProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, path, "--version") //nolint:gosec // Path resolved via LookPath from validated config
	if err := cmd.Run(); err != nil {
		b.logger.Debug().Str("cli_path", path).Err(err).Msg("engine CLI version probe failed")
		return false
	}
	return true
}

// Initialize checks availability once and remembers the outcome.
func (b *baseEngine) Initialize(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return true
	}
	if !b.IsAvailable(ctx) {
		b.logger.Warn().Str("engine_id", b.id).Msg("engine unavailable, initialize failed")
		return false
	}
	b.initialized = true
	b.logger.Debug().Str("engine_id", b.id).Msg("engine initialized")
	return true
}

// Cleanup resets the initialized flag.
func (b *baseEngine) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = false
}

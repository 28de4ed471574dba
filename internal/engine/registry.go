package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	conduiterrors "github.com/conduitworks/conduit/internal/errors"
)

// Registry holds the known engines and tracks which one is the default.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	engines  map[string]Engine
	defaults string
	logger   zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		engines: make(map[string]Engine),
		logger:  logger,
	}
}

// Register adds an engine under its own id, replacing any previous engine
// with the same id. When asDefault is true the engine becomes the default,
// superseding whichever engine held that role before. No engine is the
// default until one is designated; Default fails until then.
func (r *Registry) Register(e Engine, asDefault bool) error {
	if e == nil {
		return fmt.Errorf("register engine: %w", conduiterrors.ErrEmptyValue)
	}
	id := e.ID()
	if id == "" {
		return fmt.Errorf("register engine: blank id: %w", conduiterrors.ErrEmptyValue)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[id]; exists {
		r.logger.Warn().Str("engine_id", id).Msg("replacing previously registered engine")
	}
	r.engines[id] = e
	if asDefault {
		r.defaults = id
	}
	return nil
}

// SetDefault designates an already registered engine as the default.
func (r *Registry) SetDefault(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.engines[id]; !ok {
		return fmt.Errorf("engine %q: %w", id, conduiterrors.ErrEngineNotFound)
	}
	r.defaults = id
	return nil
}

// Get returns the engine registered under id.
func (r *Registry) Get(id string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.engines[id]
	if !ok {
		return nil, fmt.Errorf("engine %q: %w", id, conduiterrors.ErrEngineNotFound)
	}
	return e, nil
}

// Default returns the current default engine.
func (r *Registry) Default() (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.defaults == "" {
		return nil, conduiterrors.ErrNoDefaultEngine
	}
	return r.engines[r.defaults], nil
}

// DefaultID returns the id of the default engine, or "" when none is set.
func (r *Registry) DefaultID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults
}

// Has reports whether an engine is registered under id.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.engines[id]
	return ok
}

// IDs returns the registered engine ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.engines))
	for id := range r.engines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve returns the engine for id, falling back to the default when id
// is blank.
func (r *Registry) Resolve(id string) (Engine, error) {
	if id == "" {
		return r.Default()
	}
	return r.Get(id)
}

// IsAvailable probes a single engine's availability. An unknown id is
// simply unavailable.
func (r *Registry) IsAvailable(ctx context.Context, id string) bool {
	e, err := r.Get(id)
	if err != nil {
		return false
	}
	return e.IsAvailable(ctx)
}

// InitializeAll initializes every registered engine and returns the ids of
// those that succeeded. A failing engine is logged and skipped rather than
// aborting the rest.
func (r *Registry) InitializeAll(ctx context.Context) []string {
	r.mu.RLock()
	engines := make([]Engine, 0, len(r.engines))
	for _, e := range r.engines {
		engines = append(engines, e)
	}
	r.mu.RUnlock()

	sort.Slice(engines, func(i, j int) bool { return engines[i].ID() < engines[j].ID() })

	var ready []string
	for _, e := range engines {
		if ctx.Err() != nil {
			break
		}
		if !e.Initialize(ctx) {
			r.logger.Warn().Str("engine_id", e.ID()).Msg("engine failed to initialize, skipping")
			continue
		}
		ready = append(ready, e.ID())
	}
	return ready
}

// CleanupAll releases the resources of every registered engine.
func (r *Registry) CleanupAll() {
	r.mu.RLock()
	engines := make([]Engine, 0, len(r.engines))
	for _, e := range r.engines {
		engines = append(engines, e)
	}
	r.mu.RUnlock()

	for _, e := range engines {
		e.Cleanup()
	}
}

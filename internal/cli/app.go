package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/conduitworks/conduit/internal/config"
	"github.com/conduitworks/conduit/internal/constants"
	"github.com/conduitworks/conduit/internal/engine"
	"github.com/conduitworks/conduit/internal/template"
)

// app bundles the wired subsystems a subcommand needs: loaded config,
// the engine registry, and the template registry.
type app struct {
	cfg       *config.Config
	engines   *engine.Registry
	templates *template.Registry
	logger    zerolog.Logger
}

// buildApp loads configuration and wires the engine and template
// registries. Every subcommand that touches engines or templates goes
// through here so the wiring stays in one place.
func buildApp(ctx context.Context, logger zerolog.Logger) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	engines := engine.NewRegistry(logger)
	if err := registerEngines(engines, cfg, logger); err != nil {
		return nil, err
	}

	templates := template.NewRegistry()
	if err := template.RegisterBuiltins(templates); err != nil {
		return nil, fmt.Errorf("register builtin templates: %w", err)
	}
	if err := loadUserTemplates(templates, cfg, logger); err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		engines:   engines,
		templates: templates,
		logger:    logger,
	}, nil
}

// registerEngines constructs each known engine adapter from its config
// record. The configured default engine wins the default slot; otherwise
// the first registered engine holds it.
func registerEngines(r *engine.Registry, cfg *config.Config, logger zerolog.Logger) error {
	adapters := []engine.Engine{
		engine.NewIFlowEngine(cfg.Engine(engine.IFlowEngineID), nil, logger),
		engine.NewClaudeEngine(cfg.Engine(engine.ClaudeEngineID), nil, logger),
	}

	for _, e := range adapters {
		if err := r.Register(e, e.ID() == cfg.DefaultEngine); err != nil {
			return fmt.Errorf("register engine %s: %w", e.ID(), err)
		}
	}

	// Config may leave default_engine blank; fall back to the first
	// adapter so running without -e still resolves.
	if r.DefaultID() == "" {
		if err := r.SetDefault(adapters[0].ID()); err != nil {
			return fmt.Errorf("set default engine: %w", err)
		}
	}
	return nil
}

// loadUserTemplates loads templates from the global template directory and
// any extra paths named in config. A missing directory is fine; a template
// that fails to parse is not.
func loadUserTemplates(r *template.Registry, cfg *config.Config, logger zerolog.Logger) error {
	if home, err := config.GlobalConfigDir(); err == nil {
		dir := filepath.Join(home, constants.TemplatesDir)
		if err := template.LoadDir(r, dir); err != nil {
			return fmt.Errorf("load templates: %w", err)
		}
	}

	for _, path := range cfg.Templates.Paths {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn().Str("path", path).Err(err).Msg("skipping unreadable template path")
			continue
		}
		if info.IsDir() {
			if err := template.LoadDir(r, path); err != nil {
				return fmt.Errorf("load templates: %w", err)
			}
			continue
		}
		t, err := template.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load templates: %w", err)
		}
		if err := r.Register(t); err != nil {
			return fmt.Errorf("template file %s: %w", path, err)
		}
	}
	return nil
}

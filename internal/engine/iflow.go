package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/conduitworks/conduit/internal/config"
	"github.com/conduitworks/conduit/internal/domain"
)

// IFlowEngineID is the registry id of the iFlow adapter.
const IFlowEngineID = "iflow"

// IFlowEngine adapts the iFlow CLI. It is the reference adapter: it speaks
// the common stream-json dialect on stdout and reports its engine-native
// session id on stderr.
type IFlowEngine struct {
	baseEngine
	launcher Launcher
}

// NewIFlowEngine creates the iFlow adapter from its config record.
// A nil launcher falls back to the production ExecLauncher.
func NewIFlowEngine(cfg config.EngineConfig, launcher Launcher, logger zerolog.Logger) *IFlowEngine {
	if launcher == nil {
		launcher = NewExecLauncher(logger)
	}
	return &IFlowEngine{
		baseEngine: baseEngine{
			id:   IFlowEngineID,
			name: "iFlow",
			caps: domain.EngineCapabilities{
				SupportedTaskKinds: []domain.TaskKind{
					domain.TaskKindChat,
					domain.TaskKindRefactor,
					domain.TaskKindAnalyze,
					domain.TaskKindGenerate,
				},
				SupportsStreaming:          true,
				SupportsConcurrentSessions: false,
				SupportsTaskAbort:          true,
				MaxConcurrentSessions:      1,
				Description:                "iFlow CLI adapter (stream-json output)",
				Version:                    "1.0.0",
			},
			cfg:    cfg,
			logger: logger,
		},
		launcher: launcher,
	}
}

// CreateSession creates a new idle session with a fresh parser and a
// per-session executor, so concurrent sessions never share tool-call state.
func (e *IFlowEngine) CreateSession(_ context.Context) (*Session, error) {
	parser := NewStreamParser(e.logger)
	exec := &cliExecutor{
		engineID:    e.id,
		cliPath:     e.cfg.CLIPath,
		build:       e.buildCommand,
		launcher:    e.launcher,
		parser:      parser,
		logger:      e.logger,
		scanSession: true,
	}
	return NewSession(e.id, parser, exec, e.logger), nil
}

// buildCommand constructs the iflow CLI invocation for a task.
// The prompt goes over stdin so large prompts never hit argv limits.
func (e *IFlowEngine) buildCommand(task *domain.AITask) commandSpec {
	args := []string{"-p", "--output-format", "stream-json"}

	if e.cfg.Model != "" {
		args = append(args, "--model", e.cfg.Model)
	}
	for _, f := range task.Input.Files {
		args = append(args, "--file", f)
	}
	args = append(args, e.cfg.ExtraArgs...)

	var env []string
	if key := e.cfg.APIKey(); key != "" {
		env = append(env, e.cfg.APIKeyEnv+"="+key)
	}
	if e.cfg.APIBase != "" {
		env = append(env, "IFLOW_API_BASE="+e.cfg.APIBase)
	}

	return commandSpec{
		Args:  args,
		Env:   env,
		Stdin: task.Input.Prompt,
		Dir:   task.Input.Extra["working_dir"],
	}
}

// Compile-time check that IFlowEngine implements Engine.
var _ Engine = (*IFlowEngine)(nil)

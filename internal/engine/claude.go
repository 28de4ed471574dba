package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/conduitworks/conduit/internal/config"
	"github.com/conduitworks/conduit/internal/domain"
)

// ClaudeEngineID is the registry id of the Claude Code adapter.
const ClaudeEngineID = "claude"

// ClaudeEngine adapts the Claude Code CLI. It shares the stream-json
// dialect with the reference adapter but supports concurrent sessions and
// has no stderr session-id line to scan for.
type ClaudeEngine struct {
	baseEngine
	launcher Launcher
}

// NewClaudeEngine creates the Claude Code adapter from its config record.
func NewClaudeEngine(cfg config.EngineConfig, launcher Launcher, logger zerolog.Logger) *ClaudeEngine {
	if launcher == nil {
		launcher = NewExecLauncher(logger)
	}
	return &ClaudeEngine{
		baseEngine: baseEngine{
			id:   ClaudeEngineID,
			name: "Claude Code",
			caps: domain.EngineCapabilities{
				SupportedTaskKinds: []domain.TaskKind{
					domain.TaskKindChat,
					domain.TaskKindRefactor,
					domain.TaskKindAnalyze,
					domain.TaskKindGenerate,
				},
				SupportsStreaming:          true,
				SupportsConcurrentSessions: true,
				SupportsTaskAbort:          true,
				MaxConcurrentSessions:      4,
				Description:                "Claude Code CLI adapter (stream-json output)",
				Version:                    "1.0.0",
			},
			cfg:    cfg,
			logger: logger,
		},
		launcher: launcher,
	}
}

// CreateSession creates a new idle session with a fresh parser and executor.
func (e *ClaudeEngine) CreateSession(_ context.Context) (*Session, error) {
	parser := NewStreamParser(e.logger)
	exec := &cliExecutor{
		engineID: e.id,
		cliPath:  e.cfg.CLIPath,
		build:    e.buildCommand,
		launcher: e.launcher,
		parser:   parser,
		logger:   e.logger,
	}
	return NewSession(e.id, parser, exec, e.logger), nil
}

func (e *ClaudeEngine) buildCommand(task *domain.AITask) commandSpec {
	args := []string{"-p", "--output-format", "stream-json", "--verbose"}

	if e.cfg.Model != "" {
		args = append(args, "--model", e.cfg.Model)
	}
	args = append(args, e.cfg.ExtraArgs...)

	var env []string
	if key := e.cfg.APIKey(); key != "" {
		env = append(env, e.cfg.APIKeyEnv+"="+key)
	}
	if e.cfg.APIBase != "" {
		env = append(env, "ANTHROPIC_BASE_URL="+e.cfg.APIBase)
	}

	return commandSpec{
		Args:  args,
		Env:   env,
		Stdin: task.Input.Prompt,
		Dir:   task.Input.Extra["working_dir"],
	}
}

// Compile-time check that ClaudeEngine implements Engine.
var _ Engine = (*ClaudeEngine)(nil)

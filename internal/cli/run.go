package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/conduitworks/conduit/internal/constants"
	"github.com/conduitworks/conduit/internal/domain"
	"github.com/conduitworks/conduit/internal/engine"
	"github.com/conduitworks/conduit/internal/errors"
	"github.com/conduitworks/conduit/internal/template"
)

// runFlags holds the flags for the run command.
type runFlags struct {
	templateID string
	vars       []string
	files      []string
	engineID   string
	kind       string
	timeout    time.Duration
}

// AddRunCommand adds the run command to the parent command.
func AddRunCommand(parent *cobra.Command, global *GlobalFlags) {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [prompt]",
		Short: "Run an AI task and stream its events",
		Long: `Run submits a task to an engine and streams the normalized events
until the session ends.

The prompt comes either from the positional argument or from a template
(-t) rendered with -v key=value variables. The engine defaults to the
configured default engine unless -e pins one.`,
		Example: `  conduit run "explain the error handling in this repo"
  conduit run -t refactor-function -f stream.go -v function=Next -v goal="simplify the select"
  conduit run -e claude -k analyze -f parser.go "what edge cases does this miss?"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, args, flags, global)
		},
	}

	cmd.Flags().StringVarP(&flags.templateID, "template", "t", "", "task template id")
	cmd.Flags().StringArrayVarP(&flags.vars, "var", "v", nil, "template variable (key=value, repeatable)")
	cmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil, "file for the task to operate on (repeatable)")
	cmd.Flags().StringVarP(&flags.engineID, "engine", "e", "", "engine id (default: configured default)")
	cmd.Flags().StringVarP(&flags.kind, "kind", "k", string(domain.TaskKindChat), "task kind (chat|refactor|analyze|generate)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "task timeout (default: config timeout)")

	parent.AddCommand(cmd)
}

func runTask(cmd *cobra.Command, args []string, flags *runFlags, global *GlobalFlags) error {
	logger := GetLogger()

	a, err := buildApp(cmd.Context(), logger)
	if err != nil {
		return err
	}

	task, err := buildTask(a, args, flags)
	if err != nil {
		return err
	}

	eng, err := a.engines.Resolve(flags.engineID)
	if err != nil {
		return err
	}
	if !eng.Capabilities().SupportsKind(task.Kind) {
		return fmt.Errorf("engine %s, kind %s: %w", eng.ID(), task.Kind, errors.ErrTaskKindUnsupported)
	}
	if !eng.Initialize(cmd.Context()) {
		return fmt.Errorf("engine %s: %w", eng.ID(), errors.ErrEngineUnavailable)
	}

	timeout := flags.timeout
	if timeout <= 0 {
		timeout = a.cfg.Timeout
	}
	if timeout <= 0 {
		timeout = constants.DefaultTaskTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	session, err := eng.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer session.Dispose()

	logger.Info().
		Str("engine_id", eng.ID()).
		Str("task_id", task.ID).
		Str("kind", task.Kind.String()).
		Msg("running task")

	stream, err := session.Run(ctx, task)
	if err != nil {
		return fmt.Errorf("run task: %w", err)
	}

	return consumeStream(ctx, cmd.OutOrStdout(), stream, global.Output)
}

// buildTask constructs the task from either a template or a bare prompt.
func buildTask(a *app, args []string, flags *runFlags) (*domain.AITask, error) {
	if flags.templateID != "" {
		tpl, err := a.templates.Get(flags.templateID)
		if err != nil {
			return nil, err
		}
		vars, err := parseVars(flags.vars)
		if err != nil {
			return nil, err
		}
		return template.Render(tpl, template.RenderContext{
			Variables: vars,
			Files:     flags.files,
			EngineID:  flags.engineID,
		})
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, fmt.Errorf("prompt: %w", errors.ErrEmptyValue)
	}
	kind, err := domain.ParseTaskKind(flags.kind)
	if err != nil {
		return nil, err
	}

	task := domain.NewTask(kind, domain.TaskInput{
		Prompt: args[0],
		Files:  flags.files,
	})
	task.EngineID = flags.engineID
	return task, nil
}

// parseVars splits repeated key=value flags into a map.
func parseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("variable %q is not key=value: %w", pair, errors.ErrEmptyValue)
		}
		vars[key] = value
	}
	return vars, nil
}

// consumeStream drains the event stream, printing each event until the
// session ends. A closed stream without a terminal event is treated as a
// clean end; the session synthesizes terminal events itself.
func consumeStream(ctx context.Context, w io.Writer, stream *engine.EventStream, format string) error {
	enc := json.NewEncoder(w)
	for {
		ev, err := stream.Next(ctx)
		if err != nil {
			if stderrors.Is(err, errors.ErrStreamClosed) {
				return nil
			}
			return err
		}

		if format == OutputJSON {
			if err := enc.Encode(ev); err != nil {
				return fmt.Errorf("encode event: %w", err)
			}
		} else {
			printEvent(w, ev)
		}

		if ev.IsTerminal() {
			return nil
		}
	}
}

// printEvent renders one event in human-readable form.
func printEvent(w io.Writer, ev domain.AIEvent) {
	switch ev.Type {
	case domain.EventSessionStart:
		fmt.Fprintf(w, "• session %s started\n", ev.SessionID)
	case domain.EventUserMessage:
		fmt.Fprintf(w, "> %s\n", ev.Content)
	case domain.EventAssistantMessage:
		if ev.IsPartial {
			fmt.Fprint(w, ev.Content)
		} else {
			fmt.Fprintf(w, "%s\n", ev.Content)
		}
	case domain.EventToolCallStart:
		fmt.Fprintf(w, "⚙ %s\n", ev.ToolName)
	case domain.EventToolCallEnd:
		status := "ok"
		if !ev.Success {
			status = "failed"
		}
		fmt.Fprintf(w, "⚙ %s %s\n", ev.ToolName, status)
	case domain.EventProgress:
		fmt.Fprintf(w, "… %s\n", ev.Message)
	case domain.EventError:
		fmt.Fprintf(w, "✗ %s\n", ev.Message)
	case domain.EventSessionEnd:
		fmt.Fprintf(w, "• session ended (%s)\n", ev.Reason)
	}
}

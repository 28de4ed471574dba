package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/conduitworks/conduit/internal/domain"
	conduiterrors "github.com/conduitworks/conduit/internal/errors"
)

// placeholderPattern matches {{name}} placeholders, tolerating inner
// whitespace such as {{ name }}.
var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// RenderContext carries the caller-supplied inputs for rendering a
// template into a task.
type RenderContext struct {
	// Variables maps declared variable names to their values. Values here
	// take precedence over declared defaults.
	Variables map[string]string

	// Files are the file paths the task should operate on.
	Files []string

	// EngineID optionally pins the task to a specific engine. Blank means
	// the default engine resolves at submission time.
	EngineID string
}

// Render produces a concrete task from a template and a render context.
// Rendering is pure: it touches no I/O and the same inputs always produce
// the same prompt.
//
// Every required variable without a value or default is reported in a
// single error so callers can surface the full list at once. Placeholders
// that reference undeclared names are left verbatim in the prompt.
func Render(tpl *domain.TaskTemplate, rc RenderContext) (*domain.AITask, error) {
	if tpl == nil {
		return nil, conduiterrors.ErrTemplateNil
	}

	values := make(map[string]string, len(tpl.Variables))
	var missing []string
	for _, v := range tpl.Variables {
		if val, ok := rc.Variables[v.Name]; ok {
			values[v.Name] = val
			continue
		}
		if v.Default != "" {
			values[v.Name] = v.Default
			continue
		}
		if v.Required {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", conduiterrors.ErrVariableRequired, strings.Join(missing, ", "))
	}

	if tpl.RequireFiles && len(rc.Files) == 0 {
		return nil, fmt.Errorf("template %s: %w", tpl.ID, conduiterrors.ErrFilesRequired)
	}

	prompt := placeholderPattern.ReplaceAllStringFunc(tpl.PromptTemplate, func(m string) string {
		name := placeholderPattern.FindStringSubmatch(m)[1]
		if val, ok := values[name]; ok {
			return val
		}
		return m
	})

	task := domain.NewTask(tpl.Kind, domain.TaskInput{
		Prompt: prompt,
		Files:  append([]string(nil), rc.Files...),
	})
	task.EngineID = rc.EngineID
	return task, nil
}

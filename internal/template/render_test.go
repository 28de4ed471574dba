package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitworks/conduit/internal/domain"
	conduiterrors "github.com/conduitworks/conduit/internal/errors"
)

func TestRender(t *testing.T) {
	t.Run("substitutes provided variables", func(t *testing.T) {
		tpl := &domain.TaskTemplate{
			ID:             "refactor-function",
			Kind:           domain.TaskKindRefactor,
			PromptTemplate: "Refactor {{function}} to {{goal}}.",
			Variables: []domain.TemplateVariable{
				{Name: "function", Required: true},
				{Name: "goal", Required: true},
			},
		}

		task, err := Render(tpl, RenderContext{
			Variables: map[string]string{"function": "Next", "goal": "simplify"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Refactor Next to simplify.", task.Input.Prompt)
		assert.Equal(t, domain.TaskKindRefactor, task.Kind)
		assert.NotEmpty(t, task.ID)
	})

	t.Run("tolerates whitespace inside placeholders", func(t *testing.T) {
		tpl := &domain.TaskTemplate{
			ID:             "spaced",
			Kind:           domain.TaskKindChat,
			PromptTemplate: "Say {{ word }} and {{word}}.",
			Variables:      []domain.TemplateVariable{{Name: "word", Required: true}},
		}

		task, err := Render(tpl, RenderContext{Variables: map[string]string{"word": "hi"}})
		require.NoError(t, err)
		assert.Equal(t, "Say hi and hi.", task.Input.Prompt)
	})

	t.Run("explicit value beats default", func(t *testing.T) {
		tpl := &domain.TaskTemplate{
			ID:             "focus",
			Kind:           domain.TaskKindAnalyze,
			PromptTemplate: "Focus on {{focus}}.",
			Variables:      []domain.TemplateVariable{{Name: "focus", Default: "behavior"}},
		}

		task, err := Render(tpl, RenderContext{Variables: map[string]string{"focus": "errors"}})
		require.NoError(t, err)
		assert.Equal(t, "Focus on errors.", task.Input.Prompt)
	})

	t.Run("default fills missing value", func(t *testing.T) {
		tpl := &domain.TaskTemplate{
			ID:             "focus",
			Kind:           domain.TaskKindAnalyze,
			PromptTemplate: "Focus on {{focus}}.",
			Variables:      []domain.TemplateVariable{{Name: "focus", Default: "behavior"}},
		}

		task, err := Render(tpl, RenderContext{})
		require.NoError(t, err)
		assert.Equal(t, "Focus on behavior.", task.Input.Prompt)
	})

	t.Run("all missing required variables reported at once", func(t *testing.T) {
		tpl := &domain.TaskTemplate{
			ID:             "multi",
			Kind:           domain.TaskKindChat,
			PromptTemplate: "{{a}} {{b}} {{c}}",
			Variables: []domain.TemplateVariable{
				{Name: "a", Required: true},
				{Name: "b", Required: true},
				{Name: "c", Default: "x"},
			},
		}

		_, err := Render(tpl, RenderContext{})
		require.Error(t, err)
		assert.ErrorIs(t, err, conduiterrors.ErrVariableRequired)
		assert.Contains(t, err.Error(), "a")
		assert.Contains(t, err.Error(), "b")
		assert.NotContains(t, err.Error(), "c")
	})

	t.Run("undeclared placeholders stay verbatim", func(t *testing.T) {
		tpl := &domain.TaskTemplate{
			ID:             "partial",
			Kind:           domain.TaskKindChat,
			PromptTemplate: "{{known}} and {{unknown}}",
			Variables:      []domain.TemplateVariable{{Name: "known", Default: "value"}},
		}

		task, err := Render(tpl, RenderContext{})
		require.NoError(t, err)
		assert.Equal(t, "value and {{unknown}}", task.Input.Prompt)
	})

	t.Run("require_files fails without files", func(t *testing.T) {
		tpl := &domain.TaskTemplate{
			ID:             "needs-files",
			Kind:           domain.TaskKindAnalyze,
			PromptTemplate: "Explain.",
			RequireFiles:   true,
		}

		_, err := Render(tpl, RenderContext{})
		assert.ErrorIs(t, err, conduiterrors.ErrFilesRequired)

		task, err := Render(tpl, RenderContext{Files: []string{"a.go"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go"}, task.Input.Files)
	})

	t.Run("pins engine id from context", func(t *testing.T) {
		tpl := &domain.TaskTemplate{
			ID:             "pin",
			Kind:           domain.TaskKindChat,
			PromptTemplate: "hello",
		}

		task, err := Render(tpl, RenderContext{EngineID: "claude"})
		require.NoError(t, err)
		assert.Equal(t, "claude", task.EngineID)
	})

	t.Run("nil template fails", func(t *testing.T) {
		_, err := Render(nil, RenderContext{})
		assert.ErrorIs(t, err, conduiterrors.ErrTemplateNil)
	})

	t.Run("rendering is pure", func(t *testing.T) {
		tpl := &domain.TaskTemplate{
			ID:             "pure",
			Kind:           domain.TaskKindChat,
			PromptTemplate: "Say {{word}}.",
			Variables:      []domain.TemplateVariable{{Name: "word", Required: true}},
		}
		rc := RenderContext{Variables: map[string]string{"word": "hi"}}

		first, err := Render(tpl, rc)
		require.NoError(t, err)
		second, err := Render(tpl, rc)
		require.NoError(t, err)

		assert.Equal(t, first.Input.Prompt, second.Input.Prompt)
		assert.Equal(t, first.Kind, second.Kind)
		// Task ids are generated, prompts are deterministic.
		assert.NotEqual(t, first.ID, second.ID)
	})
}

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitworks/conduit/internal/domain"
	conduiterrors "github.com/conduitworks/conduit/internal/errors"
)

func chatTemplate(id string) *domain.TaskTemplate {
	return &domain.TaskTemplate{
		ID:             id,
		Kind:           domain.TaskKindChat,
		PromptTemplate: "{{message}}",
		Variables: []domain.TemplateVariable{
			{Name: "message", Required: true},
		},
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("registers and retrieves template", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(chatTemplate("greet")))

		got, err := r.Get("greet")
		require.NoError(t, err)
		assert.Equal(t, "greet", got.ID)
		assert.True(t, r.Has("greet"))
	})

	t.Run("rejects nil template", func(t *testing.T) {
		r := NewRegistry()
		assert.ErrorIs(t, r.Register(nil), conduiterrors.ErrTemplateNil)
	})

	t.Run("rejects empty id", func(t *testing.T) {
		r := NewRegistry()
		tpl := chatTemplate("  ")
		assert.ErrorIs(t, r.Register(tpl), conduiterrors.ErrTemplateIDEmpty)
	})

	t.Run("rejects invalid kind", func(t *testing.T) {
		r := NewRegistry()
		tpl := chatTemplate("bad-kind")
		tpl.Kind = domain.TaskKind("translate")
		assert.ErrorIs(t, r.Register(tpl), conduiterrors.ErrUnknownTaskKind)
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(chatTemplate("greet")))
		assert.ErrorIs(t, r.Register(chatTemplate("greet")), conduiterrors.ErrTemplateDuplicate)
	})

	t.Run("stores a clone", func(t *testing.T) {
		r := NewRegistry()
		tpl := chatTemplate("greet")
		require.NoError(t, r.Register(tpl))

		tpl.PromptTemplate = "mutated"

		got, err := r.Get("greet")
		require.NoError(t, err)
		assert.Equal(t, "{{message}}", got.PromptTemplate)
	})
}

func TestRegistry_Get(t *testing.T) {
	t.Run("unknown id fails", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Get("missing")
		assert.ErrorIs(t, err, conduiterrors.ErrTemplateNotFound)
	})

	t.Run("returns a clone", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(chatTemplate("greet")))

		first, err := r.Get("greet")
		require.NoError(t, err)
		first.Variables[0].Name = "mutated"

		second, err := r.Get("greet")
		require.NoError(t, err)
		assert.Equal(t, "message", second.Variables[0].Name)
	})
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(chatTemplate("zeta")))
	require.NoError(t, r.Register(chatTemplate("alpha")))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].ID)
	assert.Equal(t, "zeta", list[1].ID)
}

func TestRegistry_IDs(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.IDs())

	require.NoError(t, r.Register(chatTemplate("b")))
	require.NoError(t, r.Register(chatTemplate("a")))
	assert.Equal(t, []string{"a", "b"}, r.IDs())
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitworks/conduit/internal/domain"
)

func TestToolCallManager_Register(t *testing.T) {
	t.Run("registers running call with generated id", func(t *testing.T) {
		m := NewToolCallManager()

		id := m.Register("grep", map[string]any{"pattern": "foo"})
		require.NotEmpty(t, id)

		call, ok := m.Get(id)
		require.True(t, ok)
		assert.Equal(t, "grep", call.Name)
		assert.Equal(t, domain.ToolCallRunning, call.Status)
		assert.Equal(t, map[string]any{"pattern": "foo"}, call.Args)
	})

	t.Run("supports concurrent calls with the same name", func(t *testing.T) {
		m := NewToolCallManager()

		id1 := m.Register("read", nil)
		id2 := m.Register("read", nil)

		assert.NotEqual(t, id1, id2)
		assert.Equal(t, 2, m.Running())
	})
}

func TestToolCallManager_Complete(t *testing.T) {
	t.Run("transitions running call to completed", func(t *testing.T) {
		m := NewToolCallManager()
		id := m.Register("grep", nil)

		gotID, ok := m.Complete("grep", "3 matches")
		require.True(t, ok)
		assert.Equal(t, id, gotID)

		call, ok := m.Get(id)
		require.True(t, ok)
		assert.Equal(t, domain.ToolCallCompleted, call.Status)
		assert.Equal(t, "3 matches", call.Result)
	})

	t.Run("finishes the newest running call first", func(t *testing.T) {
		m := NewToolCallManager()
		older := m.Register("read", nil)
		newer := m.Register("read", nil)

		gotID, ok := m.Complete("read", "second")
		require.True(t, ok)
		assert.Equal(t, newer, gotID)

		olderCall, _ := m.Get(older)
		assert.Equal(t, domain.ToolCallRunning, olderCall.Status)
	})

	t.Run("fails without a matching running call", func(t *testing.T) {
		m := NewToolCallManager()

		_, ok := m.Complete("grep", "")
		assert.False(t, ok)
	})

	t.Run("terminal entries are never revisited", func(t *testing.T) {
		m := NewToolCallManager()
		id := m.Register("grep", nil)

		_, ok := m.Complete("grep", "first")
		require.True(t, ok)

		_, ok = m.Fail("grep", "late error")
		assert.False(t, ok)

		call, _ := m.Get(id)
		assert.Equal(t, domain.ToolCallCompleted, call.Status)
		assert.Equal(t, "first", call.Result)
	})
}

func TestToolCallManager_Fail(t *testing.T) {
	m := NewToolCallManager()
	id := m.Register("bash", nil)

	gotID, ok := m.Fail("bash", "exit 1")
	require.True(t, ok)
	assert.Equal(t, id, gotID)

	call, _ := m.Get(id)
	assert.Equal(t, domain.ToolCallFailed, call.Status)
	assert.Equal(t, "exit 1", call.Result)
	assert.Zero(t, m.Running())
}

func TestToolCallManager_Get(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		m := NewToolCallManager()
		_, ok := m.Get("missing")
		assert.False(t, ok)
	})

	t.Run("returns a copy", func(t *testing.T) {
		m := NewToolCallManager()
		id := m.Register("grep", nil)

		call, ok := m.Get(id)
		require.True(t, ok)
		call.Status = domain.ToolCallFailed

		fresh, _ := m.Get(id)
		assert.Equal(t, domain.ToolCallRunning, fresh.Status)
	})
}

func TestToolCallManager_List(t *testing.T) {
	m := NewToolCallManager()
	first := m.Register("read", nil)
	second := m.Register("grep", nil)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].ID)
	assert.Equal(t, second, list[1].ID)
}

func TestToolCallManager_Remove(t *testing.T) {
	m := NewToolCallManager()
	id := m.Register("grep", nil)
	keep := m.Register("read", nil)

	m.Remove(id)
	m.Remove("missing")

	_, ok := m.Get(id)
	assert.False(t, ok)

	list := m.List()
	require.Len(t, list, 1)
	assert.Equal(t, keep, list[0].ID)
}

func TestToolCallManager_Clear(t *testing.T) {
	m := NewToolCallManager()
	m.Register("grep", nil)
	m.Register("read", nil)

	m.Clear()

	assert.Empty(t, m.List())
	assert.Zero(t, m.Running())
}

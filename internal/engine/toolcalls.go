package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/conduitworks/conduit/internal/domain"
)

// ToolCallManager tracks in-flight and finished tool calls for one parser
// instance. It is never shared across sessions: the owning parser mutates it
// only on its own event-handling path.
//
// Entries move monotonically running -> completed|failed and persist until
// explicitly removed or the manager is cleared on session reset/dispose.
// Multiple concurrent tool calls are supported (keyed map, not a stack).
type ToolCallManager struct {
	mu    sync.Mutex
	calls map[string]*domain.ToolCallInfo
	order []string
}

// NewToolCallManager creates an empty manager.
func NewToolCallManager() *ToolCallManager {
	return &ToolCallManager{calls: make(map[string]*domain.ToolCallInfo)}
}

// Register records a new running tool call and returns its generated id.
func (m *ToolCallManager) Register(name string, args map[string]any) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.calls[id] = &domain.ToolCallInfo{
		ID:     id,
		Name:   name,
		Args:   args,
		Status: domain.ToolCallRunning,
	}
	m.order = append(m.order, id)
	return id
}

// Complete marks the most recent running call with the given name as
// completed and stores its result. Returns the call id and true on success,
// false when no running call with that name exists.
func (m *ToolCallManager) Complete(name, result string) (string, bool) {
	return m.finish(name, domain.ToolCallCompleted, result)
}

// Fail marks the most recent running call with the given name as failed.
func (m *ToolCallManager) Fail(name, result string) (string, bool) {
	return m.finish(name, domain.ToolCallFailed, result)
}

// finish transitions the newest running entry matching name into a terminal
// status. Terminal entries are never touched again.
func (m *ToolCallManager) finish(name string, status domain.ToolCallStatus, result string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.order) - 1; i >= 0; i-- {
		call := m.calls[m.order[i]]
		if call == nil || call.Name != name || call.Status != domain.ToolCallRunning {
			continue
		}
		call.Status = status
		call.Result = result
		return call.ID, true
	}
	return "", false
}

// Get returns a copy of the call with the given id.
func (m *ToolCallManager) Get(id string) (domain.ToolCallInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call, ok := m.calls[id]
	if !ok {
		return domain.ToolCallInfo{}, false
	}
	return *call, true
}

// List returns copies of all tracked calls in registration order.
func (m *ToolCallManager) List() []domain.ToolCallInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.ToolCallInfo, 0, len(m.order))
	for _, id := range m.order {
		if call, ok := m.calls[id]; ok {
			out = append(out, *call)
		}
	}
	return out
}

// Running returns the number of calls still in flight.
func (m *ToolCallManager) Running() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, call := range m.calls {
		if call.Status == domain.ToolCallRunning {
			n++
		}
	}
	return n
}

// Remove deletes the call with the given id.
func (m *ToolCallManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.calls[id]; !ok {
		return
	}
	delete(m.calls, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Clear drops every entry. Used on session reset and dispose.
func (m *ToolCallManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = make(map[string]*domain.ToolCallInfo)
	m.order = nil
}

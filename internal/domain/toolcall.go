package domain

// ToolCallStatus tracks the lifecycle of one tool invocation.
// Transitions are monotonic: running moves to completed or failed and a
// terminal status never changes again.
type ToolCallStatus string

// Tool call status constants.
const (
	// ToolCallRunning indicates the tool invocation is in flight.
	ToolCallRunning ToolCallStatus = "running"

	// ToolCallCompleted indicates the tool invocation finished successfully.
	ToolCallCompleted ToolCallStatus = "completed"

	// ToolCallFailed indicates the tool invocation finished with an error.
	ToolCallFailed ToolCallStatus = "failed"
)

// Terminal reports whether the status is completed or failed.
func (s ToolCallStatus) Terminal() bool {
	return s == ToolCallCompleted || s == ToolCallFailed
}

// ToolCallInfo records one tool invocation tracked by a session's tool call
// manager. Entries persist until explicitly removed or the manager is
// cleared on session reset/dispose.
type ToolCallInfo struct {
	// ID is the generated key for this invocation.
	ID string `json:"id"`

	// Name is the tool name reported by the engine.
	Name string `json:"name"`

	// Args is the tool input as a key-value map.
	Args map[string]any `json:"args,omitempty"`

	// Status is the current lifecycle state.
	Status ToolCallStatus `json:"status"`

	// Result is the tool output, set once the call reaches a terminal state.
	Result string `json:"result,omitempty"`
}

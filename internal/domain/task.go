// Package domain provides shared domain types for the conduit engine
// abstraction layer.
package domain

import (
	"fmt"

	"github.com/google/uuid"

	conduiterrors "github.com/conduitworks/conduit/internal/errors"
)

// TaskKind categorizes the type of work an AI task represents.
// Engines advertise which kinds they support via EngineCapabilities.
type TaskKind string

// Task kind constants define the valid kinds of AI tasks.
const (
	// TaskKindChat is a free-form conversational exchange.
	TaskKindChat TaskKind = "chat"

	// TaskKindRefactor asks the engine to restructure existing code.
	TaskKindRefactor TaskKind = "refactor"

	// TaskKindAnalyze asks the engine to explain or review code.
	TaskKindAnalyze TaskKind = "analyze"

	// TaskKindGenerate asks the engine to produce new code or content.
	TaskKindGenerate TaskKind = "generate"
)

// String returns the string representation of the TaskKind.
// This implements fmt.Stringer for convenient logging and debugging.
func (k TaskKind) String() string {
	return string(k)
}

// Valid reports whether the kind is one of the defined task kinds.
func (k TaskKind) Valid() bool {
	switch k {
	case TaskKindChat, TaskKindRefactor, TaskKindAnalyze, TaskKindGenerate:
		return true
	default:
		return false
	}
}

// ParseTaskKind converts a string to a TaskKind.
// Returns ErrUnknownTaskKind for unrecognized values.
func ParseTaskKind(s string) (TaskKind, error) {
	k := TaskKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %s", conduiterrors.ErrUnknownTaskKind, s)
	}
	return k, nil
}

// TaskInput carries the user-supplied payload of a task.
type TaskInput struct {
	// Prompt is the natural-language instruction for the engine.
	Prompt string `json:"prompt"`

	// Files is an ordered list of paths the task operates on.
	Files []string `json:"files,omitempty"`

	// Extra is an open key-value map for engine- or template-specific
	// parameters the core does not interpret.
	Extra map[string]string `json:"extra,omitempty"`
}

// AITask is a unit of work submitted by the UI, independent of which engine
// executes it. Tasks are immutable once created and consumed exactly once
// by a session run.
//
// Example JSON representation:
//
//	{
//	    "id": "3f6c2c0e-...",
//	    "kind": "refactor",
//	    "input": {"prompt": "Extract the retry loop", "files": ["runner.go"]},
//	    "engine_id": "iflow"
//	}
type AITask struct {
	// ID uniquely identifies the task within the process.
	ID string `json:"id"`

	// Kind categorizes the work requested.
	Kind TaskKind `json:"kind"`

	// Input is the user-supplied payload.
	Input TaskInput `json:"input"`

	// EngineID optionally pins the task to a specific engine.
	// Empty means the caller resolves via the registry default.
	EngineID string `json:"engine_id,omitempty"`
}

// NewTask creates an AITask with a generated id.
func NewTask(kind TaskKind, input TaskInput) *AITask {
	return &AITask{
		ID:    uuid.NewString(),
		Kind:  kind,
		Input: input,
	}
}

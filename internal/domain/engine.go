package domain

// EngineCapabilities is the static per-engine descriptor that tells the UI
// what an engine can do. Capabilities are fixed at engine construction and
// never mutated afterwards; configuration updates affect session creation
// parameters, not the advertised capability set.
//
// Example JSON representation:
//
//	{
//	    "supported_task_kinds": ["chat", "refactor", "analyze", "generate"],
//	    "supports_streaming": true,
//	    "supports_concurrent_sessions": false,
//	    "supports_task_abort": true,
//	    "max_concurrent_sessions": 1,
//	    "description": "iFlow CLI",
//	    "version": "0.3"
//	}
type EngineCapabilities struct {
	// SupportedTaskKinds lists the task kinds the engine accepts.
	SupportedTaskKinds []TaskKind `json:"supported_task_kinds"`

	// SupportsStreaming is true when the engine emits token-level output.
	SupportsStreaming bool `json:"supports_streaming"`

	// SupportsConcurrentSessions is true when more than one session may
	// run at the same time.
	SupportsConcurrentSessions bool `json:"supports_concurrent_sessions"`

	// SupportsTaskAbort is true when a running task can be interrupted.
	SupportsTaskAbort bool `json:"supports_task_abort"`

	// MaxConcurrentSessions caps simultaneous sessions (0 = unlimited).
	MaxConcurrentSessions int `json:"max_concurrent_sessions"`

	// Description is a short human-readable engine summary.
	Description string `json:"description"`

	// Version is the adapter version string.
	Version string `json:"version"`
}

// SupportsKind reports whether the engine accepts the given task kind.
func (c EngineCapabilities) SupportsKind(kind TaskKind) bool {
	for _, k := range c.SupportedTaskKinds {
		if k == kind {
			return true
		}
	}
	return false
}

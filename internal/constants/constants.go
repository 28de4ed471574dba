// Package constants provides centralized constant values used throughout conduit.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by conduit for organizing data.
const (
	// ConduitHome is the hidden directory name where conduit stores all its data.
	// This directory is created in the user's home directory.
	ConduitHome = ".conduit"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// TemplatesDir is the directory name where user task templates are stored.
	TemplatesDir = "templates"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"
)

// Timeout configurations for various operations.
const (
	// DefaultTaskTimeout is the default maximum duration for one task run
	// against an external AI CLI.
	DefaultTaskTimeout = 30 * time.Minute

	// AvailabilityProbeTimeout bounds the version probe used to decide
	// whether an engine's CLI is reachable.
	AvailabilityProbeTimeout = 10 * time.Second

	// TerminateGracePeriod is how long a process gets after SIGTERM before
	// it is killed outright.
	TerminateGracePeriod = 500 * time.Millisecond
)

// Event stream tuning.
const (
	// EventQueueSize is the capacity of a session's internal event queue.
	// The producer blocks once this many events are buffered unread.
	EventQueueSize = 64

	// StreamWakeInterval is the liveness safeguard for stream consumers:
	// a blocked Next call wakes at this interval to re-check whether the
	// stream has completed, so a silent stalled process cannot hang the
	// consumer forever.
	StreamWakeInterval = 500 * time.Millisecond

	// MaxLineSize is the largest raw output line a session will read from
	// an engine process. Longer lines are dropped by the scanner.
	MaxLineSize = 1024 * 1024
)

// Log rotation settings for the global CLI log file.
const (
	// CLILogFileName is the file name of the global CLI log.
	CLILogFileName = "conduit.log"

	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated file.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// Package errors provides centralized error handling for conduit.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrEngineNotFound indicates that no engine is registered under the
	// requested id.
	ErrEngineNotFound = errors.New("engine not found")

	// ErrNoDefaultEngine indicates that no engine has been registered as
	// the default.
	ErrNoDefaultEngine = errors.New("no default engine registered")

	// ErrEngineUnavailable indicates that the engine's external CLI could
	// not be reached.
	ErrEngineUnavailable = errors.New("engine unavailable")

	// ErrSessionDisposed indicates an operation on a disposed session.
	ErrSessionDisposed = errors.New("session disposed")

	// ErrSessionBusy indicates that a session already has a running task.
	ErrSessionBusy = errors.New("session already running a task")

	// ErrStreamClosed indicates a read from a closed event stream.
	ErrStreamClosed = errors.New("event stream closed")

	// ErrProcessNotRunning indicates a termination request with no live
	// external process.
	ErrProcessNotRunning = errors.New("no process running")

	// ErrProcessSpawn indicates the external CLI process failed to start.
	ErrProcessSpawn = errors.New("process spawn failed")

	// ErrUnknownTaskKind indicates an unrecognized task kind value.
	ErrUnknownTaskKind = errors.New("unknown task kind")

	// ErrTaskKindUnsupported indicates the engine does not support the
	// requested task kind.
	ErrTaskKindUnsupported = errors.New("task kind not supported by engine")

	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateNil indicates a nil template was passed where one is required.
	ErrTemplateNil = errors.New("template is nil")

	// ErrTemplateDuplicate indicates a template with the same id is already
	// registered.
	ErrTemplateDuplicate = errors.New("template already registered")

	// ErrTemplateIDEmpty indicates a template with an empty id.
	ErrTemplateIDEmpty = errors.New("template id cannot be empty")

	// ErrVariableRequired indicates that one or more required template
	// variables were not provided.
	ErrVariableRequired = errors.New("required variable missing")

	// ErrFilesRequired indicates that a template requires files but none
	// were provided in the render context.
	ErrFilesRequired = errors.New("template requires at least one file")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrConfigNotFound indicates that the configuration file was not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidOutputFormat indicates an unsupported CLI output format.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidDuration indicates that a duration format is invalid.
	ErrInvalidDuration = errors.New("invalid duration format")
)

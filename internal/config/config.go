// Package config provides configuration management for conduit with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (CONDUIT_* prefix)
//  2. Project config (.conduit/config.yaml)
//  3. Global config (~/.conduit/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import (
	"os"
	"time"
)

// Config is the root configuration structure for conduit.
type Config struct {
	// DefaultEngine is the id of the engine used when a task does not pin one.
	DefaultEngine string `yaml:"default_engine" mapstructure:"default_engine"`

	// Timeout is the maximum duration for one task run.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Engines maps engine id to its CLI invocation record.
	Engines map[string]EngineConfig `yaml:"engines" mapstructure:"engines"`

	// Templates contains settings for user task templates.
	Templates TemplatesConfig `yaml:"templates" mapstructure:"templates"`
}

// EngineConfig is the persisted per-engine record the core needs to
// construct a session: where the CLI lives and how to authenticate it.
// Storage/retrieval mechanics beyond this record are out of scope.
type EngineConfig struct {
	// CLIPath is the executable path or bare command name of the engine CLI.
	CLIPath string `yaml:"cli_path" mapstructure:"cli_path"`

	// Model selects the model the CLI should use, when supported.
	Model string `yaml:"model,omitempty" mapstructure:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	// The key itself never lives in config files.
	APIKeyEnv string `yaml:"api_key_env,omitempty" mapstructure:"api_key_env"`

	// APIBase overrides the CLI's API endpoint, when supported.
	APIBase string `yaml:"api_base,omitempty" mapstructure:"api_base"`

	// ExtraArgs are appended verbatim to every invocation.
	ExtraArgs []string `yaml:"extra_args,omitempty" mapstructure:"extra_args"`
}

// APIKey resolves the API key from the configured environment variable.
// Returns empty string when no variable is configured or it is unset.
func (e *EngineConfig) APIKey() string {
	if e == nil || e.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(e.APIKeyEnv)
}

// TemplatesConfig contains settings for user task templates.
type TemplatesConfig struct {
	// Paths lists extra template files or directories to load at startup.
	Paths []string `yaml:"paths,omitempty" mapstructure:"paths"`
}

// Engine returns the config record for an engine id, falling back to a
// zero-value record so engines always have a config to read.
func (c *Config) Engine(id string) EngineConfig {
	if c == nil {
		return EngineConfig{}
	}
	return c.Engines[id]
}

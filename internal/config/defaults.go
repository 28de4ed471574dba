package config

import (
	"github.com/spf13/viper"

	"github.com/conduitworks/conduit/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are the base layer that config files and environment
// variables override.
func DefaultConfig() *Config {
	return &Config{
		// The iflow adapter is the reference engine and the out-of-the-box
		// default. Users can point default_engine at any registered id.
		DefaultEngine: "iflow",

		Timeout: constants.DefaultTaskTimeout,

		Engines: map[string]EngineConfig{
			"iflow": {
				CLIPath:   "iflow",
				APIKeyEnv: "IFLOW_API_KEY",
			},
			"claude": {
				CLIPath:   "claude",
				APIKeyEnv: "ANTHROPIC_API_KEY",
			},
		},
	}
}

// setDefaults registers default values on a viper instance so they
// participate in the precedence chain.
func setDefaults(v *viper.Viper) {
	v.SetDefault("default_engine", "iflow")
	v.SetDefault("timeout", constants.DefaultTaskTimeout)
	v.SetDefault("engines.iflow.cli_path", "iflow")
	v.SetDefault("engines.iflow.api_key_env", "IFLOW_API_KEY")
	v.SetDefault("engines.claude.cli_path", "claude")
	v.SetDefault("engines.claude.api_key_env", "ANTHROPIC_API_KEY")
}

package config

import (
	"fmt"
	"strings"

	"github.com/conduitworks/conduit/internal/errors"
)

// Validate checks a Config for values that would break engine construction.
// It returns a sentinel-wrapped error for the first problem found so callers
// can categorize failures with errors.Is.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", errors.ErrConfigInvalid)
	}

	if cfg.DefaultEngine != "" {
		if _, ok := cfg.Engines[cfg.DefaultEngine]; !ok {
			return fmt.Errorf("%w: default_engine %q has no engines.%s entry",
				errors.ErrConfigInvalid, cfg.DefaultEngine, cfg.DefaultEngine)
		}
	}

	for id, ec := range cfg.Engines {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: engine id cannot be blank", errors.ErrConfigInvalid)
		}
		if strings.TrimSpace(ec.CLIPath) == "" {
			return fmt.Errorf("%w: engines.%s.cli_path cannot be blank", errors.ErrConfigInvalid, id)
		}
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/conduitworks/conduit/internal/constants"
	"github.com/conduitworks/conduit/internal/errors"
)

// GlobalConfigDir returns the path to the global conduit configuration
// directory, typically ~/.conduit on Unix systems. The CONDUIT_HOME
// environment variable overrides the default location.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	if home := os.Getenv("CONDUIT_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.ConduitHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration
// directory. This is always .conduit relative to the working directory.
func ProjectConfigDir() string {
	return constants.ConduitHome
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.ConfigFileName)
}

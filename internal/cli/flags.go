// Package cli provides the command-line interface for conduit.
package cli

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conduitworks/conduit/internal/errors"
)

// Process exit codes. 2 is reserved for user-input mistakes so scripts
// can tell "fix your invocation" apart from "something broke".
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitInvalidInput = 2
)

// Output formats accepted by the -o flag.
const (
	// OutputText renders human-readable output. The default.
	OutputText = "text"
	// OutputJSON renders one JSON document (or NDJSON for streams).
	OutputJSON = "json"
)

// GlobalFlags carries the persistent flag values shared by every
// subcommand.
type GlobalFlags struct {
	// Output selects text or json rendering.
	Output string
	// Verbose switches logging to debug level.
	Verbose bool
	// Quiet restricts logging to warnings and errors.
	Quiet bool
}

// AddGlobalFlags registers the persistent flags on the root command.
// Verbose has no shorthand: -v belongs to run's --var.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags wires the persistent flags into viper so CONDUIT_*
// environment variables (CONDUIT_OUTPUT, CONDUIT_VERBOSE, ...) can set
// them too.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// The flags live on the root command; cmd may be a subcommand when
	// this runs from PersistentPreRunE.
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("CONDUIT")
	v.AutomaticEnv()

	return nil
}

// ValidOutputFormats lists the accepted -o values, for error messages.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat reports whether format is an accepted -o value.
func IsValidOutputFormat(format string) bool {
	for _, valid := range ValidOutputFormats() {
		if format == valid {
			return true
		}
	}
	return false
}

// ExitCodeForError maps an error to the process exit code: 0 for nil,
// 2 for user-input mistakes (bad flags, unknown task kinds, unsatisfied
// template requirements), 1 for everything else.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if stderrors.Is(err, errors.ErrInvalidOutputFormat) ||
		stderrors.Is(err, errors.ErrUnknownTaskKind) ||
		stderrors.Is(err, errors.ErrVariableRequired) ||
		stderrors.Is(err, errors.ErrFilesRequired) ||
		stderrors.Is(err, errors.ErrTemplateNotFound) {
		return ExitInvalidInput
	}

	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError recognizes cobra's own flag and argument validation
// failures, which surface as plain errors without sentinel types.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}

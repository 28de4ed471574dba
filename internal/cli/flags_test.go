package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conduitworks/conduit/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	assert.True(t, IsValidOutputFormat(OutputText))
	assert.True(t, IsValidOutputFormat(OutputJSON))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestValidOutputFormats(t *testing.T) {
	assert.Equal(t, []string{OutputText, OutputJSON}, ValidOutputFormats())
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, ExitSuccess},
		{"generic error", stderrors.New("boom"), ExitError},
		{"invalid output format", errors.ErrInvalidOutputFormat, ExitInvalidInput},
		{"unknown task kind", fmt.Errorf("kind: %w", errors.ErrUnknownTaskKind), ExitInvalidInput},
		{"missing variables", fmt.Errorf("x: %w", errors.ErrVariableRequired), ExitInvalidInput},
		{"missing files", errors.ErrFilesRequired, ExitInvalidInput},
		{"template not found", errors.ErrTemplateNotFound, ExitInvalidInput},
		{"cobra unknown flag", stderrors.New("unknown flag: --bogus"), ExitInvalidInput},
		{"cobra unknown command", stderrors.New(`unknown command "frob" for "conduit"`), ExitInvalidInput},
		{"engine unavailable", errors.ErrEngineUnavailable, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/conduitworks/conduit/internal/config"
)

func TestBaseEngine_IsAvailable(t *testing.T) {
	t.Run("missing binary reports false", func(t *testing.T) {
		eng := NewIFlowEngine(config.EngineConfig{CLIPath: "definitely-not-a-real-cli-7f3a"}, nil, zerolog.Nop())
		assert.False(t, eng.IsAvailable(context.Background()))
	})

	t.Run("empty path reports false", func(t *testing.T) {
		eng := NewIFlowEngine(config.EngineConfig{}, nil, zerolog.Nop())
		assert.False(t, eng.IsAvailable(context.Background()))
	})
}

func TestBaseEngine_Initialize(t *testing.T) {
	t.Run("unavailable engine fails to initialize", func(t *testing.T) {
		eng := NewIFlowEngine(config.EngineConfig{CLIPath: "definitely-not-a-real-cli-7f3a"}, nil, zerolog.Nop())
		assert.False(t, eng.Initialize(context.Background()))
	})

	t.Run("cleanup after failed initialize is safe", func(t *testing.T) {
		eng := NewIFlowEngine(config.EngineConfig{CLIPath: "definitely-not-a-real-cli-7f3a"}, nil, zerolog.Nop())
		eng.Initialize(context.Background())
		eng.Cleanup()
		eng.Cleanup()
		assert.False(t, eng.Initialize(context.Background()))
	})
}

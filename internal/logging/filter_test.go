package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsSensitiveData(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"anthropic key", "using sk-ant-api03-abcdef123456", true},
		{"openai style key", "key sk-abcdefghijklmnopqrstuvwxyz", true},
		{"api key assignment", `api_key=abcdef1234567890abcd`, true},
		{"bearer token", "Bearer abcdefghijklmnopqrstuvwx", true},
		{"password assignment", "password: hunter22hunter22", true},
		{"plain text", "starting engine session", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsSensitiveData(tt.input))
		})
	}
}

func TestFilterSensitiveValue(t *testing.T) {
	t.Run("redacts matched secrets", func(t *testing.T) {
		got := FilterSensitiveValue("key is sk-ant-api03-abcdef123456 here")
		assert.NotContains(t, got, "sk-ant-api03")
		assert.Contains(t, got, RedactedValue)
	})

	t.Run("leaves clean text alone", func(t *testing.T) {
		assert.Equal(t, "all clear", FilterSensitiveValue("all clear"))
	})
}

func TestIsSensitiveFieldName(t *testing.T) {
	assert.True(t, IsSensitiveFieldName("api_key"))
	assert.True(t, IsSensitiveFieldName("API_KEY"))
	assert.True(t, IsSensitiveFieldName("anthropic_api_key"))
	assert.True(t, IsSensitiveFieldName("my_password_field"))
	assert.False(t, IsSensitiveFieldName("engine_id"))
	assert.False(t, IsSensitiveFieldName("session_id"))
}

func TestSafeValue(t *testing.T) {
	assert.Equal(t, RedactedValue, SafeValue("api_key", "sk-ant-api03-abc"))
	assert.Equal(t, "iflow", SafeValue("engine_id", "iflow"))
}

func TestSensitiveDataHook(t *testing.T) {
	t.Run("flags entries with secrets", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())

		logger.Info().Msg("leaked sk-ant-api03-abcdef123456")

		assert.Contains(t, buf.String(), "contains_filtered_data")
	})

	t.Run("leaves clean entries unflagged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())

		logger.Info().Msg("session started")

		assert.NotContains(t, buf.String(), "contains_filtered_data")
	})
}

func TestFilteringWriter(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFilteringWriter(&buf)

	n, err := fw.Write([]byte("token sk-ant-api03-abcdef123456 end\n"))
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.NotContains(t, buf.String(), "sk-ant-api03")
	assert.Contains(t, buf.String(), RedactedValue)
}

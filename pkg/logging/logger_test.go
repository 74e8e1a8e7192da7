package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerFromConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *Config
		level zerolog.Level
	}{
		{
			name:  "nil config uses defaults",
			cfg:   nil,
			level: zerolog.InfoLevel,
		},
		{
			name:  "debug level",
			cfg:   &Config{Level: "debug", Format: "json", Output: "discard"},
			level: zerolog.DebugLevel,
		},
		{
			name:  "warn level",
			cfg:   &Config{Level: "warn", Format: "json", Output: "discard"},
			level: zerolog.WarnLevel,
		},
		{
			name:  "invalid level falls back to info",
			cfg:   &Config{Level: "shouty", Format: "json", Output: "discard"},
			level: zerolog.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLoggerFromConfig(tt.cfg)
			assert.Equal(t, tt.level, logger.GetLevel())
		})
	}
}

func TestTestLogger(t *testing.T) {
	tl := NewTestLogger(t)
	tl.Info().Str("feed", "inventory").Msg("feed loaded")

	assert.True(t, tl.Contains("feed loaded"))
	assert.Len(t, tl.Lines(), 1)
}

func TestContextPropagation(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	FromContext(ctx).Info().Msg("from context")
	assert.True(t, tl.Contains("from context"))

	t.Run("nil context returns default", func(t *testing.T) {
		//nolint:staticcheck // Explicitly testing nil context handling
		assert.Equal(t, Default(), FromContext(nil))
	})

	t.Run("run id", func(t *testing.T) {
		ctx := WithRunID(ctx, "run-123")
		assert.Equal(t, "run-123", RunID(ctx))
		Ctx(ctx).Info().Msg("tagged")
		assert.True(t, tl.Contains("run-123"))
	})

	t.Run("stage field", func(t *testing.T) {
		ctx := WithStage(ctx, "aggregate")
		Ctx(ctx).Info().Msg("stage message")
		assert.True(t, tl.Contains("aggregate"))
	})
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		level   zapcore.Level
		wantErr bool
	}{
		{"production", DefaultConfig(), zapcore.InfoLevel, false},
		{"development", DevelopmentConfig(), zapcore.DebugLevel, false},
		{"from level", FromLevel("warn", false), zapcore.WarnLevel, false},
		{"bad level", FromLevel("loud", false), zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			assert.False(t, logger.Core().Enabled(tt.level-1))
		})
	}
}

func TestComponent(t *testing.T) {
	logger := NewDefault()
	child := logger.Component("desktop")
	assert.NotNil(t, child)
	assert.NotSame(t, logger.Logger, child)
}

func TestEncodingFormat(t *testing.T) {
	assert.Equal(t, "console", encodingFormat(true))
	assert.Equal(t, "json", encodingFormat(false))
}

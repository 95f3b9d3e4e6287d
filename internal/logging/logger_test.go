package logging_test

import (
	"testing"

	"github.com/nikolayk812/vibe-vault/internal/config"
	"github.com/nikolayk812/vibe-vault/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		wantLevel zapcore.Level
	}{
		{
			name:      "debug json",
			cfg:       config.LoggingConfig{Level: "debug", Format: "json"},
			wantLevel: zapcore.DebugLevel,
		},
		{
			name:      "upper case warn console",
			cfg:       config.LoggingConfig{Level: " WARN ", Format: "console"},
			wantLevel: zapcore.WarnLevel,
		},
		{
			name:      "unknown level falls back to info",
			cfg:       config.LoggingConfig{Level: "chatty", Format: "json"},
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "empty level falls back to info",
			cfg:       config.LoggingConfig{Format: "json"},
			wantLevel: zapcore.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := logging.New(tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLevel, logger.Level())
		})
	}
}

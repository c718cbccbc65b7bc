package logging

import (
	"testing"

	"github.com/phambaophuc/image-autocrop/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := New(config.LogConfig{Level: "warn", Format: format})
		require.NoError(t, err, format)
		require.False(t, logger.Core().Enabled(zap.InfoLevel))
		require.True(t, logger.Core().Enabled(zap.WarnLevel))
	}

	_, err := New(config.LogConfig{Level: "loud", Format: "console"})
	require.Error(t, err)
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		development bool
		debug       bool
	}{
		{name: "production info", level: "info"},
		{name: "production debug", level: "debug", debug: true},
		{name: "development warn", level: "warn", development: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.development)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, logger.Core().Enabled(zap.DebugLevel))
			assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
		})
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"loud"`)
}

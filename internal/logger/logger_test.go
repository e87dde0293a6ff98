package logger

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/endpointmap/internal/config"
)

func TestDetermineLogLevel(t *testing.T) {
	t.Setenv("ENDPOINTMAP_LOG_LEVEL", "")

	assert.Equal(t, hclog.Info, determineLogLevel(nil))
	assert.Equal(t, hclog.Debug, determineLogLevel(&config.Config{Logger: config.Logger{Level: "debug"}}))
	assert.Equal(t, hclog.Info, determineLogLevel(&config.Config{Logger: config.Logger{Level: "loud"}}))

	t.Setenv("ENDPOINTMAP_LOG_LEVEL", "error")
	assert.Equal(t, hclog.Error, determineLogLevel(&config.Config{Logger: config.Logger{Level: "debug"}}))
}

func TestNewLogger(t *testing.T) {
	t.Setenv("ENDPOINTMAP_LOG_LEVEL", "warn")

	lg := NewLogger(nil, "endpoints")
	assert.Equal(t, "endpoints", lg.Name())
	assert.True(t, lg.IsWarn())
	assert.False(t, lg.IsInfo())
}

package handler

import (
	"testing"

	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configWithAddress(addr string) config.StructuredConfig {
	var cfg config.StructuredConfig
	cfg.Server.HTTPAddress = addr
	return cfg
}

// TestNewHandlers_HTTP verifies that a configured HTTP address yields an
// initialised HTTP handler. http.NewHandler only stores the services
// pointer, so nil is safe here.
func TestNewHandlers_HTTP(t *testing.T) {
	h, err := NewHandlers(nil, configWithAddress(":8080"), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(nil, configWithAddress(""), logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := configWithAddress(":8080")

	h1, err1 := NewHandlers(nil, cfg, logger.Nop())
	h2, err2 := NewHandlers(nil, cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}

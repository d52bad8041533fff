package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/macbridge/internal/config"
)

func TestCalendarMemoryBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store = "memory"
	sc := NewContext(cfg)

	client, err := sc.Calendar()
	require.NoError(t, err)
	require.NotNil(t, client)

	// Lazy construction caches the client.
	again, err := sc.Calendar()
	require.NoError(t, err)
	assert.Same(t, client, again)
}

func TestCalendarUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store = "cloud"
	sc := NewContext(cfg)

	_, err := sc.Calendar()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}

func TestNewContextNilConfig(t *testing.T) {
	sc := NewContext(nil)
	require.NotNil(t, sc.Config())
	assert.Equal(t, "native", sc.Config().Store)
}

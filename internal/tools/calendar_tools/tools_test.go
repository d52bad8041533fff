package calendar_tools

import (
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"

	"github.com/teemow/macbridge/internal/config"
	"github.com/teemow/macbridge/internal/server"
)

func newTestContext() *server.Context {
	cfg := config.Default()
	cfg.Store = "memory"
	return server.NewContext(cfg)
}

func TestRegisterCalendarTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1")
	sc := newTestContext()

	err := RegisterCalendarTools(s, sc, false)
	require.NoError(t, err)
}

func TestRegisterCalendarToolsReadOnly(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1")
	sc := newTestContext()

	err := RegisterCalendarTools(s, sc, true)
	require.NoError(t, err)
}

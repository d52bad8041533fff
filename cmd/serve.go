package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/macbridge/internal/logging"
	"github.com/teemow/macbridge/internal/server"
	"github.com/teemow/macbridge/internal/tools/calendar_tools"
	"github.com/teemow/macbridge/internal/tools/notes_tools"
)

func newServeCmd() *cobra.Command {
	var yolo bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server on stdio",
		Long: `Serve exposes the calendar, reminder and notes operations as MCP
tools over stdio. Write operations are disabled unless --yolo is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mcpSrv := mcpserver.NewMCPServer("macbridge", version,
				mcpserver.WithToolCapabilities(true),
			)

			// readOnly is the inverse of yolo
			readOnly := !yolo

			if err := registerAllTools(mcpSrv, sctx, readOnly); err != nil {
				return err
			}
			return runStdioServer(mcpSrv)
		},
	}

	cmd.Flags().BoolVar(&yolo, "yolo", false, "enable write operations (create, update, delete)")
	return cmd
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.Context, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Notes",
			register: func() error {
				return notes_tools.RegisterNotesTools(mcpSrv, ctx, readOnly)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
		slog.Debug("registered tools", logging.Tool(reg.name))
	}

	return nil
}

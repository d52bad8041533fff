// Package notes_tools provides MCP tools for the Notes application.
// Write tools are only registered when the server runs with write
// access enabled.
package notes_tools

// Package calendar_tools provides MCP tools for calendar events and
// reminders. Write tools are only registered when the server runs with
// write access enabled.
package calendar_tools

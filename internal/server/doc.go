// Package server holds the shared state for the MCP server: a Context
// that lazily builds the calendar and notes clients from configuration
// and hands them to the registered tools.
package server

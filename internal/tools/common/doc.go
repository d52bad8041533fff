// Package common provides shared utilities for MCP tool implementations.
// It contains argument extraction helpers used across all tool packages
// to avoid code duplication and ensure consistent behavior.
package common

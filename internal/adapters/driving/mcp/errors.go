// Package mcp provides an MCP (Model Context Protocol) server adapter for comb.
// It lets AI assistants stage, roll up, search and recall agent memory.
package mcp

import "errors"

// ErrMissingStore is returned when the store port is not provided.
var ErrMissingStore = errors.New("mcp: store is required")

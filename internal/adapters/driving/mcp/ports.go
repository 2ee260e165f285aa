package mcp

import (
	"github.com/comb-labs/comb-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Store is the chain archive and honeycomb graph engine.
	Store driving.Store
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Store == nil {
		return ErrMissingStore
	}
	return nil
}

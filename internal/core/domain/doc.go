// Package domain defines the core business entities for COMB.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: One day's archived, hash-chained conversation record
//   - StagedEntry: A raw conversation dump awaiting rollup
//   - Config: Store-level tuning (graph, ranking, social weights)
//   - VerifyReport: Result of a chain integrity walk
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ArchiveStore: Hash-chained document persistence and verification
//   - StagingLog: Append-only daily staging persistence
//   - SearchEngine: Full-text ranking. The sole extension point: any
//     implementation of index/search/remove can replace the built-in BM25
//     engine without touching the archive or the honeycomb graph.
//   - Clock: Date source for "today"
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

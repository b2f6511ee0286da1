// Package domain defines the core business entities for ReqLens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Feature: A single requirement extracted from a document
//   - MatchPair: A new feature matched against an existing one
//   - ComparisonResult: The outcome of comparing two requirement sets
//   - Statistics: Derived coverage metrics for a comparison
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

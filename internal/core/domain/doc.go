// Package domain defines the core value types shared by the travelog pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawMessage: a named field mapping decoded from an activity file
//   - Tags: a flat tag mapping read from photo metadata
//   - ParseResult: the classified, validated output of one parse
//   - ParsedMedia: a ParseResult as handed to persistence
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

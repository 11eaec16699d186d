// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ActivityDecoder: Decodes activity files into raw messages
//   - TagReader: Reads embedded photo metadata
//   - Parser: Turns one file into a ParseResult
//   - ParserRegistry: Selects the parser for a file
//   - MediaStore: Parsed media persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - GeoReference: Static province and city data. Without it, geo lookups return ErrNotFound.
//   - IngestJournal: Ingestion history. Without it, outcomes are only logged.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or parser package
package driven

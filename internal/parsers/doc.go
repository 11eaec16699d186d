// Package parsers provides the shared framework for format parsers: file
// preconditions, raw field classification into record kinds, storage paths
// and the extension-based parser registry.
//
// Format parsers live in subpackages and are registered with the Registry
// at startup.
package parsers

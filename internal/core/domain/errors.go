package domain

import "errors"

// Domain errors represent structural failures.
// Data-quality problems are never returned as errors; they are recorded
// as Findings on the record that carries them.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates a file format no parser handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrFileParsing indicates a file could not be opened, read or decoded.
	ErrFileParsing = errors.New("file parsing failed")

	// ErrStoreClosed indicates the media store has been closed.
	ErrStoreClosed = errors.New("store closed")
)

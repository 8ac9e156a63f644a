// Package errors provides the error taxonomy used across scribe.
// It implements structured error types with machine-readable codes,
// provider status capture, and an aggregate error for chunked batches.
package errors

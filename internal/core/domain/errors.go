package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingAPIKey indicates the provider credential is absent.
	// Fatal at startup: the process refuses to run without it.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrCatalogNotFound indicates the catalog source file does not exist
	// or could not be read. Fatal at startup.
	ErrCatalogNotFound = errors.New("catalog file not found")

	// ErrCatalogMalformed indicates the catalog source file could not be
	// parsed. Fatal at startup.
	ErrCatalogMalformed = errors.New("catalog file malformed")

	// ErrIndexUnavailable indicates an embedding or vector index operation
	// failed during population or search. Surfaced to the caller, never
	// retried.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrProviderUnavailable indicates a completion call failed.
	// Surfaced to the caller, never retried.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")
)

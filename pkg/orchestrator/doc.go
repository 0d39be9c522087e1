// Package orchestrator wires the loader → parser → example generator pipeline
// for OpenAPI documents, providing dependency injection friendly helpers for
// consumers that prefer a single entry point.
package orchestrator

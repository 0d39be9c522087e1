// Package schema defines the schema definition IR consumed by the example
// generator. A Definition is an ordered list of named fields; each field
// carries a Kind resolved once at construction time (Scalar, Nested,
// NestedMany or List) so generators can dispatch with a type switch instead
// of inspecting source documents at generation time.
//
// Definitions are produced by the OpenAPI parser, by struct reflection
// (pkg/structschema) or assembled by hand with the builder helpers.
package schema

// Package openapi exposes the public contracts for turning OpenAPI documents
// into schema definitions: a Loader fetches the raw document, a Parser builds
// a Catalog of component and operation body definitions, and an Annotator
// writes generated examples back into the document. Implementations live
// under internal/openapi so kin-openapi types never leak to callers.
package openapi

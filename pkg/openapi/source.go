package openapi

import "github.com/goliatone/go-exampledump/pkg/schema"

// Source identifies where an OpenAPI document originated.
type Source = schema.Source

// SourceKind enumerates the loader modalities.
type SourceKind = schema.SourceKind

const (
	SourceKindFile = schema.SourceKindFile
	SourceKindFS   = schema.SourceKindFS
	SourceKindURL  = schema.SourceKindURL
)

// Document wraps the raw OpenAPI payload and its origin.
type Document = schema.Document

// NewDocument constructs a Document, rejecting empty payloads.
func NewDocument(src Source, raw []byte) (Document, error) {
	return schema.NewDocument(src, raw)
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	return schema.MustNewDocument(src, raw)
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return schema.SourceFromFile(path)
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return schema.SourceFromFS(name)
}

// SourceFromURL returns a Source for an HTTP(S) document. It panics on
// malformed URLs.
func SourceFromURL(raw string) Source {
	return schema.SourceFromURL(raw)
}

// ParseSource picks a URL source for http(s) locations and a file source for
// anything else. Blank input yields nil.
func ParseSource(raw string) (Source, error) {
	return schema.ParseSource(raw)
}

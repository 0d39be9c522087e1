// Package loader reads OpenAPI documents for the example generator. Local
// files and fs.FS entries are always available; URL sources are refused
// unless the caller supplies an HTTP client or opts into the default one.
// Every source is capped at maxDocumentSize bytes.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	pkgopenapi "github.com/goliatone/go-exampledump/pkg/openapi"
)

// maxDocumentSize bounds every document payload.
const maxDocumentSize = 16 << 20

// Loader implements pkgopenapi.Loader.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
	limit   int64
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New builds a Loader. A caller supplied client is copied so the request
// timeout can be applied without touching the original.
func New(options pkgopenapi.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	return &Loader{
		files:   options.FileSystem,
		client:  client,
		timeout: timeout,
		limit:   maxDocumentSize,
	}
}

// Load reads the document behind src and sniffs its syntax.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		data, err = l.loadFile(ctx, src.Location())
	case pkgopenapi.SourceKindFS:
		data, err = l.loadFromFS(ctx, src.Location())
	case pkgopenapi.SourceKindURL:
		if l.client == nil {
			return pkgopenapi.Document{}, errors.New("openapi loader: http support disabled")
		}
		data, err = l.loadHTTP(ctx, src.Location())
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, err
	}

	return pkgopenapi.NewDocument(src, data)
}

// readLimited reads r in full, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64, location string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", location, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("openapi loader: %s exceeds %d bytes", location, limit)
	}
	return data, nil
}

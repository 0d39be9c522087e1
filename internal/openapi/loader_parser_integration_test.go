package openapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	exampledump "github.com/goliatone/go-exampledump"
	"github.com/goliatone/go-exampledump/pkg/examples"
	pkgopenapi "github.com/goliatone/go-exampledump/pkg/openapi"
)

func TestLoaderParserIntegration(t *testing.T) {
	ctx := context.Background()

	fixture := filepath.Join("parser", "testdata", "people.yaml")
	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "people.yaml")
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		t.Fatalf("write temp fixture: %v", err)
	}

	loader := exampledump.NewLoader()
	parser := exampledump.NewParser()

	// File source
	docFile, err := loader.Load(ctx, pkgopenapi.SourceFromFile(filePath))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	fromFile := generateCars(t, parser, docFile)

	// HTTP source
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer server.Close()

	loaderHTTP := exampledump.NewLoader(pkgopenapi.WithHTTPFallback(0))
	docHTTP, err := loaderHTTP.Load(ctx, pkgopenapi.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	fromHTTP := generateCars(t, parser, docHTTP)

	if fromFile != fromHTTP {
		t.Fatalf("file and http sources disagree:\n%s\n%s", fromFile, fromHTTP)
	}
}

func generateCars(t *testing.T, parser pkgopenapi.Parser, doc pkgopenapi.Document) string {
	t.Helper()

	catalog, err := parser.Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse %s: %v", doc.Location(), err)
	}
	def, ok := catalog.Schema("PersonCars")
	if !ok {
		t.Fatalf("PersonCars missing from %s", doc.Location())
	}
	obj, err := examples.Generate(def)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	payload, err := obj.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(payload)
}

package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	pkgopenapi "github.com/goliatone/go-exampledump/pkg/openapi"
)

const minimalDocument = `openapi: 3.0.3
info: {title: Pets, version: "1"}
paths: {}
`

func TestLoaderLoadsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.yaml")
	if err := os.WriteFile(path, []byte(minimalDocument), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != minimalDocument {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoaderLoadsFromFS(t *testing.T) {
	files := fstest.MapFS{"specs/openapi.yaml": &fstest.MapFile{Data: []byte(minimalDocument)}}
	ldr := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	doc, err := ldr.Load(context.Background(), pkgopenapi.SourceFromFS("specs/openapi.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.IsJSON() {
		t.Fatalf("yaml document reported as json")
	}

	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFS("specs/openapi.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoaderHTTPRequiresOptIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"openapi":"3.0.3"}`))
	}))
	defer server.Close()

	src := pkgopenapi.SourceFromURL(server.URL + "/openapi.json")

	_, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), src)
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http disabled error, got %v", err)
	}

	doc, err := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(time.Second))).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !doc.IsJSON() {
		t.Fatalf("expected json payload")
	}

	missing := pkgopenapi.SourceFromURL(server.URL + "/missing.json")
	_, err = New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client()))).Load(context.Background(), missing)
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(pkgopenapi.NewLoaderOptions()).Load(ctx, pkgopenapi.SourceFromFile("openapi.yaml"))
	if err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoaderCapsDocumentSize(t *testing.T) {
	payload := []byte(minimalDocument)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.yaml")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	files := fstest.MapFS{"openapi.yaml": &fstest.MapFile{Data: payload}}

	sources := map[string]pkgopenapi.Source{
		"file": pkgopenapi.SourceFromFile(path),
		"fs":   pkgopenapi.SourceFromFS("openapi.yaml"),
		"url":  pkgopenapi.SourceFromURL(server.URL + "/openapi.yaml"),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			ldr := New(pkgopenapi.NewLoaderOptions(
				pkgopenapi.WithFileSystem(files),
				pkgopenapi.WithHTTPFallback(time.Second),
			))
			if _, err := ldr.Load(context.Background(), src); err != nil {
				t.Fatalf("load within limit: %v", err)
			}

			ldr.limit = int64(len(payload) - 1)
			_, err := ldr.Load(context.Background(), src)
			if err == nil || !strings.Contains(err.Error(), "exceeds") {
				t.Fatalf("expected size error, got %v", err)
			}
		})
	}
}

package exampledump_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	exampledump "github.com/goliatone/go-exampledump"
	"github.com/goliatone/go-exampledump/pkg/examples"
	pkgopenapi "github.com/goliatone/go-exampledump/pkg/openapi"
	"github.com/goliatone/go-exampledump/pkg/schema"
	"github.com/goliatone/go-exampledump/pkg/testsupport"
)

var peopleSource = pkgopenapi.SourceFromFile(filepath.Join("internal", "openapi", "parser", "testdata", "people.yaml"))

func TestDumps(t *testing.T) {
	cars := schema.MustNewDefinition("PersonCars",
		schema.StringField("car_name"),
		schema.IntegerField("car_price"),
	)
	person := schema.MustNewDefinition("Person",
		schema.StringField("name"),
		schema.StringField("password").AsWriteOnly(),
		schema.ManyField("cars", cars),
	)

	obj, err := exampledump.Dumps(person)
	if err != nil {
		t.Fatalf("dumps: %v", err)
	}
	payload, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	const want = `{"name":"string","cars":[{"car_name":"string","car_price":1}]}`
	if diff := cmp.Diff(want, string(payload)); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpStruct(t *testing.T) {
	type credentials struct {
		User     string `json:"user"`
		Password string `json:"password"`
		Retries  int    `json:"retries"`
	}

	obj, err := exampledump.DumpStruct(credentials{}, examples.WithExcludeFields("password"))
	if err != nil {
		t.Fatalf("dump struct: %v", err)
	}
	if diff := cmp.Diff([]string{"user", "retries"}, examples.Keys(obj)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpOpenAPI(t *testing.T) {
	obj, err := exampledump.DumpOpenAPI(testsupport.Context(), peopleSource, "PersonCars",
		examples.WithExtendTypeMap(map[examples.TypeKey]any{examples.Key(schema.TypeInteger): 42}),
	)
	if err != nil {
		t.Fatalf("dump openapi: %v", err)
	}
	want := map[string]any{"car_name": "string", "car_price": 42}
	if diff := cmp.Diff(want, examples.ToMap(obj)); diff != "" {
		t.Fatalf("example mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpOperation(t *testing.T) {
	body, err := exampledump.DumpOperation(testsupport.Context(), peopleSource, "createPerson", "")
	if err != nil {
		t.Fatalf("dump operation: %v", err)
	}
	obj, ok := body.(*exampledump.Object)
	if !ok {
		t.Fatalf("expected object body, got %T", body)
	}
	if diff := cmp.Diff([]string{"created_by", "name", "age"}, examples.Keys(obj)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpOperationListResponse(t *testing.T) {
	body, err := exampledump.DumpOperation(testsupport.Context(), peopleSource, "get:/people", "200",
		examples.WithExcludeFields("id", "birthday", "cars", "house", "phones", "pet", "extra"),
	)
	if err != nil {
		t.Fatalf("dump operation: %v", err)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if diff := cmp.Diff(`[{"name":"string"}]`, string(payload)); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestNewAnnotator(t *testing.T) {
	ctx := testsupport.Context()
	doc, err := exampledump.NewLoader().Load(ctx, peopleSource)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	out, err := exampledump.NewAnnotator(pkgopenapi.WithSchemas("Audit")).Annotate(ctx, doc)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if !strings.Contains(string(out), "example:") {
		t.Fatalf("expected annotated YAML to carry an example, got:\n%s", out)
	}
}

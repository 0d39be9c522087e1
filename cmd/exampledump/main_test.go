package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixture = filepath.Join("..", "..", "internal", "openapi", "parser", "testdata", "people.yaml")

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	a := &app{
		stdin:  strings.NewReader(""),
		stdout: &stdout,
		stderr: &stderr,
		pick: func(context.Context, string, []string) (string, error) {
			t.Fatalf("picker must not run without a terminal")
			return "", nil
		},
	}
	err := a.run(context.Background(), args)
	return stdout.String(), err
}

func TestRunPrintsSchemaExample(t *testing.T) {
	out, err := runApp(t, "-source", fixture, "-schema", "PersonCars")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"car_name\": \"string\",\n  \"car_price\": 1\n}\n", out)
}

func TestRunYAMLWithExclusions(t *testing.T) {
	out, err := runApp(t, "-source", fixture, "-operation", "createPerson", "-exclude", "created_by, age", "-format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: string\n", out)
}

func TestRunWrapsArrayResponses(t *testing.T) {
	out, err := runApp(t, "-source", fixture, "-operation", "get:/people", "-response", "200",
		"-exclude", "id,birthday,cars,house,phones,pet,extra")
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"string\"\n  }\n]\n", out)
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("exclude: [car_name]\nextend:\n  - type: integer\n    value: 99\n"), 0o644))

	out, err := runApp(t, "-source", fixture, "-schema", "PersonCars", "-config", cfgPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"car_price":99}`, out)

	out, err = runApp(t, "-source", fixture, "-schema", "PersonCars", "-config", cfgPath, "-exclude", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"car_name":"string","car_price":99}`, out)
}

func TestRunListsCatalog(t *testing.T) {
	out, err := runApp(t, "-source", fixture, "-list")
	require.NoError(t, err)
	assert.Contains(t, out, "schemas:\n  PersonCars\n  Person\n  PersonInput\n  Audit\n")
	assert.Contains(t, out, "createPerson\tPOST /people")
}

func TestRunAnnotateWritesOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "annotated.yaml")
	_, err := runApp(t, "-source", fixture, "-annotate", "-schema", "Audit", "-output", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "example:")
}

func TestRunRejectsInvalidInvocations(t *testing.T) {
	cases := map[string][]string{
		"missing source":  {"-schema", "Person"},
		"missing target":  {"-source", fixture},
		"bad format":      {"-source", fixture, "-schema", "Person", "-format", "xml"},
		"bad log level":   {"-source", fixture, "-schema", "Person", "-log-level", "loud"},
		"bad max depth":   {"-source", fixture, "-schema", "Person", "-max-depth", "0"},
		"unknown schema":  {"-source", fixture, "-schema", "Nope"},
		"stray arguments": {"-source", fixture, "extra"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := runApp(t, args...)
			require.Error(t, err)
		})
	}
}

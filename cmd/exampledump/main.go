package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	exampledump "github.com/goliatone/go-exampledump"
	"github.com/goliatone/go-exampledump/internal/yamlconv"
	"github.com/goliatone/go-exampledump/pkg/config"
	"github.com/goliatone/go-exampledump/pkg/examples"
	pkgopenapi "github.com/goliatone/go-exampledump/pkg/openapi"
	"github.com/goliatone/go-exampledump/pkg/orchestrator"
)

const remoteTimeout = 30 * time.Second

func main() {
	ctx := context.Background()
	app := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		pick:   surveyPick,
	}
	if err := app.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "exampledump: %v\n", err)
		os.Exit(1)
	}
}

// pickFunc asks the user to choose one of options.
type pickFunc func(ctx context.Context, message string, options []string) (string, error)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	pick   pickFunc
}

type flags struct {
	source    string
	schema    string
	operation string
	response  string
	exclude   string
	renew     bool
	maxDepth  int
	config    string
	format    string
	annotate  bool
	overwrite bool
	list      bool
	output    string
	logLevel  string
}

func parseFlags(args []string, stderr io.Writer) (flags, map[string]bool, error) {
	var f flags
	fs := flag.NewFlagSet("exampledump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.source, "source", "", "OpenAPI document path or URL")
	fs.StringVar(&f.schema, "schema", "", "component schema to generate an example for")
	fs.StringVar(&f.operation, "operation", "", "operation ID whose body should be generated")
	fs.StringVar(&f.response, "response", "", "response status code (request body if empty)")
	fs.StringVar(&f.exclude, "exclude", "", "comma separated field names to leave out")
	fs.BoolVar(&f.renew, "renew", false, "use the current time and a fresh uuid instead of placeholders")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "nesting limit (default 32)")
	fs.StringVar(&f.config, "config", "", "YAML configuration file")
	fs.StringVar(&f.format, "format", "json", "output format: json or yaml")
	fs.BoolVar(&f.annotate, "annotate", false, "write examples into the document and print it")
	fs.BoolVar(&f.overwrite, "overwrite", false, "replace examples already present when annotating")
	fs.BoolVar(&f.list, "list", false, "list component schemas and operations")
	fs.StringVar(&f.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return flags{}, nil, err
	}
	if fs.NArg() > 0 {
		return flags{}, nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})
	return f, set, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	f, set, err := parseFlags(args, a.stderr)
	if err != nil {
		return err
	}
	if f.format != "json" && f.format != "yaml" {
		return fmt.Errorf("unknown format %q", f.format)
	}

	logger, err := newLogger(a.stderr, f.logLevel)
	if err != nil {
		return err
	}

	src, err := pkgopenapi.ParseSource(f.source)
	if err != nil {
		return err
	}
	if src == nil {
		return errors.New("-source is required")
	}

	opts, err := generatorOptions(f, set)
	if err != nil {
		return err
	}
	opts = append(opts, examples.WithLogger(logger))
	gen := examples.New(opts...)

	loader := exampledump.NewLoader(pkgopenapi.WithHTTPFallback(remoteTimeout))
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return err
	}
	logger.Debug("exampledump: loaded document", slog.String("location", doc.Location()))

	if f.annotate {
		return a.annotate(ctx, f, doc, gen, logger)
	}

	orch := orchestrator.New(
		orchestrator.WithLoader(loader),
		orchestrator.WithGenerator(gen),
		orchestrator.WithLogger(logger),
	)
	req := orchestrator.Request{
		Document:    &doc,
		Schema:      f.schema,
		OperationID: f.operation,
		Response:    f.response,
	}

	if f.list || (f.schema == "" && f.operation == "") {
		catalog, err := orch.Catalog(ctx, req)
		if err != nil {
			return err
		}
		if f.list {
			return a.write(f.output, []byte(listing(catalog)))
		}
		if !a.interactive() {
			return errors.New("-schema or -operation is required")
		}
		if len(catalog.Names) == 0 {
			return errors.New("document declares no component schemas")
		}
		choice, err := a.pick(ctx, "Select a schema", catalog.Names)
		if err != nil {
			return err
		}
		req.Schema = choice
	}

	body, err := orch.Body(ctx, req)
	if err != nil {
		return err
	}
	payload, err := encode(body, f.format)
	if err != nil {
		return err
	}
	return a.write(f.output, payload)
}

func (a *app) annotate(ctx context.Context, f flags, doc pkgopenapi.Document, gen *examples.Generator, logger *slog.Logger) error {
	var schemas []string
	if f.schema != "" {
		schemas = append(schemas, f.schema)
	}
	annotator := exampledump.NewAnnotator(
		pkgopenapi.WithAnnotationGenerator(gen),
		pkgopenapi.WithAnnotationLogger(logger),
		pkgopenapi.WithOverwrite(f.overwrite),
		pkgopenapi.WithSchemas(schemas...),
	)
	out, err := annotator.Annotate(ctx, doc)
	if err != nil {
		return err
	}
	return a.write(f.output, out)
}

// generatorOptions merges the config file with flags. Flags that were set
// explicitly win over file values.
func generatorOptions(f flags, set map[string]bool) ([]examples.Option, error) {
	var cfg config.Config
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if set["exclude"] {
		cfg.Exclude = splitList(f.exclude)
	}
	if set["renew"] {
		cfg.Renew = f.renew
	}
	if set["max-depth"] {
		if f.maxDepth <= 0 {
			return nil, fmt.Errorf("-max-depth must be positive, got %d", f.maxDepth)
		}
		cfg.MaxDepth = f.maxDepth
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.Options(), nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func encode(body any, format string) ([]byte, error) {
	payload, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode example: %w", err)
	}
	if format == "yaml" {
		return yamlconv.FromJSON(payload)
	}
	return append(payload, '\n'), nil
}

func listing(catalog pkgopenapi.Catalog) string {
	var b strings.Builder
	b.WriteString("schemas:\n")
	for _, name := range catalog.Names {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	b.WriteString("operations:\n")
	for _, id := range catalog.OperationIDs() {
		op, _ := catalog.Operation(id)
		fmt.Fprintf(&b, "  %s\t%s %s\n", id, op.Method, op.Path)
	}
	return b.String()
}

func (a *app) write(path string, payload []byte) error {
	if path == "" {
		_, err := a.stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(a.stderr, "Example written to %s\n", path)
	return nil
}

func (a *app) interactive() bool {
	file, ok := a.stdin.(*os.File)
	return ok && a.pick != nil && isatty.IsTerminal(file.Fd())
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q", level)
	}
	noColor := true
	if file, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(file.Fd())
	}
	handler := tint.NewHandler(w, &tint.Options{
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
		Level:      lvl,
	})
	return slog.New(handler), nil
}

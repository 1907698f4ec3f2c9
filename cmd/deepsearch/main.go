package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hanpama/deepsearch/internal/eventbus"
	"github.com/hanpama/deepsearch/internal/otel"
	"github.com/hanpama/deepsearch/internal/search"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

const rootUsage = `deepsearch — find values and key paths inside nested documents

USAGE:
  deepsearch <command> [flags]

COMMANDS:
  search           Search a JSON or YAML document for an item
  selftest         Run the built-in search examples
  help             Show help for any command
`

const searchUsage = `search FLAGS:
  -item <value>            Item to search for (required)
  -item.type <type>        How to read -item: string, int, float, bool (default: string)
  -input <file>            JSON or YAML document to search (default: stdin)
  -format <fmt>            Input format: json or yaml (default: from -input extension, else json)
  -config <file>           YAML file with exclude_paths, exclude_types and verbose_level
  -exclude-path <path>     Skip the node at path, e.g. root['a'][0]. Repeatable
  -exclude-type <type>     Skip nodes of a Go type, e.g. string or float64. Repeatable
  -verbose <n>             1 reports paths, 2 reports paths with values (default: 1)
  -pretty                  Pretty-print JSON output
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: deepsearch)
`

const selftestUsage = `selftest FLAGS:
  (none; exits non-zero when an example does not produce its documented result)
`

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("deepsearch", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "search":
		return cmdSearch(cmdArgs)
	case "selftest":
		return cmdSelftest(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, rootUsage)
		return nil
	}
	switch args[0] {
	case "search":
		fmt.Fprint(stdout, searchUsage)
	case "selftest":
		fmt.Fprint(stdout, selftestUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdSearch(args []string) error {
	item := ""
	itemType := "string"
	input := ""
	format := ""
	configFile := ""
	verbose := 1
	pretty := false
	otelEndpoint := ""
	otelService := "deepsearch"
	var excludePaths, excludeTypes stringListFlag

	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&item, "item", item, "Item to search for")
	fs.StringVar(&itemType, "item.type", itemType, "How to read -item")
	fs.StringVar(&input, "input", input, "Document to search")
	fs.StringVar(&format, "format", format, "Input format")
	fs.StringVar(&configFile, "config", configFile, "YAML search configuration")
	fs.Var(&excludePaths, "exclude-path", "Path to skip")
	fs.Var(&excludeTypes, "exclude-type", "Go type to skip")
	fs.IntVar(&verbose, "verbose", verbose, "Verbose level")
	fs.BoolVar(&pretty, "pretty", pretty, "Pretty-print JSON output")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, searchUsage)
		return err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["item"] {
		fmt.Fprint(stderr, searchUsage)
		return fmt.Errorf("-item is required")
	}

	target, err := parseItem(item, itemType)
	if err != nil {
		return err
	}

	var opts []search.Option
	if configFile != "" {
		cfgOpts, err := loadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		opts = append(opts, cfgOpts...)
	}
	opts = append(opts,
		search.WithExcludePaths(excludePaths...),
		search.WithExcludeTypeNames(excludeTypes...),
		search.WithLogger(slog.New(slog.NewTextHandler(stderr, nil))),
	)
	if set["verbose"] {
		opts = append(opts, search.WithVerbosity(verbose))
	}
	searcher, err := search.New(opts...)
	if err != nil {
		return fmt.Errorf("search init: %w", err)
	}

	doc, err := loadDocument(input, format)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	res := searcher.Search(context.Background(), doc, target)
	return writeJSON(res, pretty)
}

func parseItem(raw, typ string) (any, error) {
	switch typ {
	case "string":
		return raw, nil
	case "int":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int item %q: %w", raw, err)
		}
		return n, nil
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float item %q: %w", raw, err)
		}
		return f, nil
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool item %q: %w", raw, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown item type %q", typ)
	}
}

func loadConfig(path string) ([]search.Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg map[string]any
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return search.OptionsFromConfig(cfg)
}

func loadDocument(path, format string) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch format {
	case "json":
		return oj.Parse(data)
	case "yaml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return stringKeys(doc), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// stringKeys rewrites the map[any]any mappings yaml.v3 produces for
// non-string keys into map[string]any so matched values stay encodable.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = stringKeys(e)
		}
		return m
	case map[string]any:
		for k, e := range t {
			t[k] = stringKeys(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = stringKeys(e)
		}
		return t
	}
	return v
}

func writeJSON(v any, pretty bool) error {
	enc := json.NewEncoder(stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

package search

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"slices"
)

// Keys accepted by OptionsFromConfig.
const (
	KeyExcludePaths = "exclude_paths"
	KeyExcludeTypes = "exclude_types"
	KeyVerboseLevel = "verbose_level"
)

// DefaultAdvisoryLimit caps the unordered-collection warnings emitted by a
// single search.
const DefaultAdvisoryLimit = 10

var validKeys = []string{KeyExcludePaths, KeyExcludeTypes, KeyVerboseLevel}

type options struct {
	excludePaths  map[string]struct{}
	excludeTypes  map[reflect.Type]struct{}
	excludeNames  map[string]struct{}
	verbosity     int
	advisoryLimit int
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		excludePaths:  map[string]struct{}{},
		excludeTypes:  map[reflect.Type]struct{}{},
		excludeNames:  map[string]struct{}{},
		verbosity:     1,
		advisoryLimit: DefaultAdvisoryLimit,
	}
}

// Option configures a Searcher.
type Option func(*options)

// WithExcludePaths skips the nodes at the given paths, e.g. "root['a'][0]".
func WithExcludePaths(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			o.excludePaths[p] = struct{}{}
		}
	}
}

// WithExcludeTypes skips every node whose dynamic type is one of types.
func WithExcludeTypes(types ...reflect.Type) Option {
	return func(o *options) {
		for _, t := range types {
			if t != nil {
				o.excludeTypes[t] = struct{}{}
			}
		}
	}
}

// WithExcludeTypeNames skips every node whose dynamic type prints as one of
// names (reflect.Type.String, e.g. "string" or "map[string]interface {}").
func WithExcludeTypeNames(names ...string) Option {
	return func(o *options) {
		for _, n := range names {
			o.excludeNames[n] = struct{}{}
		}
	}
}

// WithVerbosity sets the verbose level. Level 1 reports paths only, level 2
// and above reports paths with their values.
func WithVerbosity(level int) Option {
	return func(o *options) {
		o.verbosity = level
	}
}

// WithAdvisoryLimit sets how many unordered-collection warnings a single
// search may log. Zero silences them.
func WithAdvisoryLimit(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.advisoryLimit = n
	}
}

// WithLogger sets the logger used for advisories.
//
// If nil is passed, slog.Default is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// OptionsFromConfig converts a keyed configuration, such as one decoded from
// a YAML file, into options. Unknown keys are rejected with a *ConfigError
// naming every offending key.
func OptionsFromConfig(cfg map[string]any) ([]Option, error) {
	var invalid []string
	for k := range cfg {
		if !slices.Contains(validKeys, k) {
			invalid = append(invalid, k)
		}
	}
	if len(invalid) > 0 {
		slices.Sort(invalid)
		return nil, &ConfigError{Invalid: invalid, Valid: slices.Clone(validKeys)}
	}

	var opts []Option
	if v, ok := cfg[KeyExcludePaths]; ok {
		paths, err := stringList(KeyExcludePaths, v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithExcludePaths(paths...))
	}
	if v, ok := cfg[KeyExcludeTypes]; ok {
		typeOpts, err := excludeTypeOptions(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, typeOpts...)
	}
	if v, ok := cfg[KeyVerboseLevel]; ok {
		level, err := intValue(KeyVerboseLevel, v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithVerbosity(level))
	}
	return opts, nil
}

func stringList(key string, v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{list}, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, &ConfigValueError{Key: key, Value: item}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &ConfigValueError{Key: key, Value: v}
	}
}

func excludeTypeOptions(v any) ([]Option, error) {
	var items []any
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []any:
		items = list
	case []reflect.Type:
		return []Option{WithExcludeTypes(list...)}, nil
	case []string:
		return []Option{WithExcludeTypeNames(list...)}, nil
	default:
		items = []any{v}
	}

	var (
		types []reflect.Type
		names []string
	)
	for _, item := range items {
		switch t := item.(type) {
		case reflect.Type:
			types = append(types, t)
		case string:
			names = append(names, t)
		default:
			return nil, &ConfigValueError{Key: KeyExcludeTypes, Value: item}
		}
	}
	return []Option{WithExcludeTypes(types...), WithExcludeTypeNames(names...)}, nil
}

func intValue(key string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		if n <= math.MaxInt32 {
			return int(n), nil
		}
	case float64:
		if n == math.Trunc(n) && math.Abs(n) <= math.MaxInt32 {
			return int(n), nil
		}
	}
	return 0, &ConfigValueError{Key: key, Value: v, cause: fmt.Errorf("expected an integer")}
}

package main

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/hanpama/deepsearch/internal/search"
)

type example struct {
	name    string
	root    any
	item    any
	verbose int
	want    map[string]any
}

func examples() []example {
	return []example{
		{
			name:    "scalar in list",
			root:    []any{"a", "b", "target"},
			item:    "target",
			verbose: 2,
			want:    map[string]any{"matched_values": search.PathValues{"root[2]": "target"}},
		},
		{
			name:    "substring in list",
			root:    []any{"long somewhere", "string", 0, "somewhere great!"},
			item:    "somewhere",
			verbose: 2,
			want: map[string]any{"matched_values": search.PathValues{
				"root[0]": "long somewhere",
				"root[3]": "somewhere great!",
			}},
		},
		{
			name: "nested data",
			root: []any{
				"something somewhere",
				map[any]any{"long": "somewhere", "string": 2, 0: 0, "somewhere": "around"},
			},
			item:    "somewhere",
			verbose: 2,
			want: map[string]any{
				"matched_paths":  search.PathValues{"root[1]['somewhere']": "around"},
				"matched_values": search.PathValues{
					"root[0]":         "something somewhere",
					"root[1]['long']": "somewhere",
				},
			},
		},
		{
			name:    "self reference",
			root:    selfReferencing(),
			item:    "x",
			verbose: 1,
			want:    map[string]any{"matched_values": search.PathSet{"root[1]": {}}},
		},
	}
}

func selfReferencing() []any {
	s := []any{nil, "x"}
	s[0] = s
	return s
}

func cmdSelftest(args []string) error {
	if len(args) > 0 {
		fmt.Fprint(stderr, selftestUsage)
		return fmt.Errorf("selftest takes no arguments")
	}
	failed := 0
	for _, ex := range examples() {
		res, err := search.Search(context.Background(), ex.root, ex.item, search.WithVerbosity(ex.verbose))
		if err != nil {
			return fmt.Errorf("%s: %w", ex.name, err)
		}
		if diff := cmp.Diff(ex.want, res.Map()); diff != "" {
			failed++
			fmt.Fprintf(stdout, "FAIL %s (-want +got):\n%s", ex.name, diff)
			continue
		}
		fmt.Fprintf(stdout, "ok   %s\n", ex.name)
	}
	if failed > 0 {
		return fmt.Errorf("%d example(s) failed", failed)
	}
	return nil
}

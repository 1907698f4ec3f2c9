package search

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
)

type point [2]int

func (p point) Fields() []Field {
	return []Field{{Name: "X", Value: p[0]}, {Name: "Y", Value: p[1]}}
}

type user struct {
	Name     string
	Email    string `search:"mail"`
	Password string `search:"-"`
}

type account struct {
	ID    int
	Owner string
}

func (a *account) Slots() []string { return []string{"Owner", "Label"} }

func (a *account) Label() string { return "acct-" + a.Owner }

type broken struct{}

func (broken) Slots() []string { return []string{"Missing"} }

func TestClassifyObject(t *testing.T) {
	cases := []struct {
		name  string
		value any
		shape objectShape
		names []string
	}{
		{name: "record array", value: point{1, 2}, shape: shapeRecord, names: []string{"X", "Y"}},
		{name: "proto message", value: durationpb.New(time.Second), shape: shapeRecord, names: []string{"seconds"}},
		{name: "slots", value: &account{ID: 1, Owner: "bob"}, shape: shapeSlots, names: []string{"Owner", "Label"}},
		{name: "missing slot", value: broken{}, shape: shapeOpaque},
		{name: "struct", value: user{Name: "ann"}, shape: shapeFields, names: []string{"Name", "mail"}},
		{name: "struct pointer", value: &user{Name: "ann"}, shape: shapeFields, names: []string{"Name", "mail"}},
		{name: "empty struct", value: struct{}{}, shape: shapeFields, names: []string{}},
		{name: "unexported only", value: struct{ a int }{1}, shape: shapeOpaque},
		{name: "channel", value: make(chan int), shape: shapeOpaque},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj := classifyObject(tc.value)
			require.Equal(t, tc.shape, obj.shape, "shape %s", obj.shape)
			if tc.shape == shapeOpaque {
				return
			}
			names := make([]string, 0, len(obj.fields))
			for _, f := range obj.fields {
				names = append(names, f.Name)
			}
			require.Equal(t, tc.names, names)
		})
	}
}

// Pattern: Result comparison
func TestSearch_Objects(t *testing.T) {
	mustStruct := func(m map[string]any) *structpb.Struct {
		s, err := structpb.NewStruct(m)
		require.NoError(t, err)
		return s
	}

	cases := []struct {
		name string
		root any
		item any
		want map[string]any
	}{
		{
			name: "struct tags rename and hide fields",
			root: user{Name: "ann", Email: "ann@example.com", Password: "mail"},
			item: "mail",
			want: map[string]any{"matched_paths": PathValues{"root.mail": "ann@example.com"}},
		},
		{
			name: "record array and plain array",
			root: []any{point{1, 2}, [2]int{2, 3}},
			item: 2,
			want: map[string]any{"matched_values": PathValues{"root[0].Y": 2, "root[1][0]": 2}},
		},
		{
			name: "slots read fields and methods",
			root: &account{ID: 7, Owner: "bob"},
			item: "bob",
			want: map[string]any{"matched_values": PathValues{"root.Owner": "bob", "root.Label": "acct-bob"}},
		},
		{
			name: "missing slot is unprocessed",
			root: []any{broken{}},
			item: "x",
			want: map[string]any{"unprocessed": []string{"root[0]"}},
		},
		{
			name: "proto struct",
			root: mustStruct(map[string]any{"name": "somewhere", "tags": []any{"a", "somewhere else"}}),
			item: "somewhere",
			want: map[string]any{"matched_values": PathValues{
				"root.fields['name'].string_value":                     "somewhere",
				"root.fields['tags'].list_value.values[1].string_value": "somewhere else",
			}},
		},
		{
			name: "proto scalar field",
			root: map[string]any{"timeout": durationpb.New(90 * time.Second)},
			item: 90,
			want: map[string]any{"matched_values": PathValues{"root['timeout'].seconds": int64(90)}},
		},
		{
			name: "exact value types",
			root: []any{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024"},
			item: time.Date(2024, 1, 2, 4, 4, 5, 0, time.FixedZone("CET", 3600)),
			want: map[string]any{"matched_values": PathValues{"root[0]": time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustSearch(t, tc.root, tc.item, WithVerbosity(2))
			if diff := cmp.Diff(tc.want, got.Map()); diff != "" {
				t.Fatalf("Result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

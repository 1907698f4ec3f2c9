package search

import (
	"encoding/json"
	"maps"
	"slices"
)

// Matches is one report bucket. Its concrete type is PathSet at verbosity 1
// and PathValues at verbosity 2 and above.
type Matches interface {
	Len() int
	// Paths returns the matched paths in sorted order.
	Paths() []string
	record(path string, value any)
}

// PathSet records matched paths without values.
type PathSet map[string]struct{}

func (s PathSet) Len() int { return len(s) }

func (s PathSet) Paths() []string { return slices.Sorted(maps.Keys(s)) }

func (s PathSet) record(path string, _ any) { s[path] = struct{}{} }

// MarshalJSON renders the set as a sorted array.
func (s PathSet) MarshalJSON() ([]byte, error) { return json.Marshal(s.Paths()) }

// PathValues records matched paths with the value found there.
type PathValues map[string]any

func (v PathValues) Len() int { return len(v) }

func (v PathValues) Paths() []string { return slices.Sorted(maps.Keys(v)) }

func (v PathValues) record(path string, value any) { v[path] = value }

func newMatches(verbosity int) Matches {
	if verbosity >= 2 {
		return PathValues{}
	}
	return PathSet{}
}

// Result is the outcome of a search. Buckets with no entries are nil.
type Result struct {
	// MatchedPaths holds structural matches: paths whose text contains the item.
	MatchedPaths Matches `json:"matched_paths,omitempty"`
	// MatchedValues holds value matches.
	MatchedValues Matches `json:"matched_values,omitempty"`
	// Unprocessed lists the paths of objects that could not be introspected.
	Unprocessed []string `json:"unprocessed,omitempty"`
}

func newResult(verbosity int) *Result {
	return &Result{
		MatchedPaths:  newMatches(verbosity),
		MatchedValues: newMatches(verbosity),
	}
}

// compact drops empty buckets; the result is not modified afterwards.
func (r *Result) compact() {
	if r.MatchedPaths != nil && r.MatchedPaths.Len() == 0 {
		r.MatchedPaths = nil
	}
	if r.MatchedValues != nil && r.MatchedValues.Len() == 0 {
		r.MatchedValues = nil
	}
	if len(r.Unprocessed) == 0 {
		r.Unprocessed = nil
	}
}

// Empty reports whether the search found nothing and skipped nothing.
func (r *Result) Empty() bool {
	return r.MatchedPaths == nil && r.MatchedValues == nil && r.Unprocessed == nil
}

// Map returns the result keyed by "matched_paths", "matched_values" and
// "unprocessed", leaving out empty buckets.
func (r *Result) Map() map[string]any {
	out := make(map[string]any, 3)
	if r.MatchedPaths != nil {
		out["matched_paths"] = r.MatchedPaths
	}
	if r.MatchedValues != nil {
		out["matched_values"] = r.MatchedValues
	}
	if r.Unprocessed != nil {
		out["unprocessed"] = r.Unprocessed
	}
	return out
}

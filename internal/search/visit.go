package search

import (
	"reflect"
	"slices"
	"strings"
)

// visitMapping walks key/value children. attr selects ".name" paths over
// "[key]" paths; it is set when the entries are an object's fields.
func (st *state) visitMapping(entries []entry, path string, anc ancestry, attr bool) {
	for _, e := range entries {
		if anc.contains(e.value) {
			continue
		}
		var child string
		if attr {
			child = attrPath(path, e.key)
		} else {
			child = indexPath(path, e.key)
		}
		if st.skip(e.value, child) {
			continue
		}
		if strings.Contains(child, st.itemText) {
			st.result.MatchedPaths.record(child, e.value)
		}
		st.search(e.value, child, anc.with(e.value))
	}
}

// visitSequence walks positional children. An element equal to the item is
// reported as a value match and not descended into.
func (st *state) visitSequence(elems []any, path string, anc ancestry) {
	for i, elem := range elems {
		child := indexPath(path, i)
		if st.skip(elem, child) {
			continue
		}
		if equal(elem, st.item) {
			st.result.MatchedValues.record(child, elem)
			continue
		}
		if anc.contains(elem) {
			continue
		}
		st.search(elem, child, anc.with(elem))
	}
}

// visitTuple walks a fixed-size array, as an object when it names its fields.
func (st *state) visitTuple(node any, rv reflect.Value, path string, anc ancestry) {
	if rec, ok := node.(Record); ok {
		st.visitMapping(fieldEntries(rec.Fields()), path, anc, true)
		return
	}
	st.visitSequence(sliceElems(rv), path, anc)
}

// isSet reports whether t is a map used as a set (map[K]struct{}).
func isSet(t reflect.Type) bool {
	e := t.Elem()
	return e.Kind() == reflect.Struct && e.NumField() == 0
}

// mapEntries reads entries through MapRange: keys such as NaN are not
// reachable through MapIndex.
func mapEntries(rv reflect.Value) []entry {
	type pair struct{ k, v reflect.Value }
	pairs := make([]pair, 0, rv.Len())
	for iter := rv.MapRange(); iter.Next(); {
		pairs = append(pairs, pair{iter.Key(), iter.Value()})
	}
	slices.SortFunc(pairs, func(a, b pair) int { return compareKeys(a.k, b.k) })
	entries := make([]entry, len(pairs))
	for i, p := range pairs {
		entries[i] = entry{key: p.k.Interface(), value: p.v.Interface()}
	}
	return entries
}

func setMembers(rv reflect.Value) []any {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)
	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = k.Interface()
	}
	return members
}

// sliceElems works for slices and arrays.
func sliceElems(rv reflect.Value) []any {
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems
}

package search

import (
	"maps"
	"reflect"
)

// identity is the reference identity of a container. The type is part of the
// key because a struct and its first field share an address.
type identity struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// ancestry holds the identities of the containers on the current branch.
// It is never mutated once built; with returns an extended copy.
type ancestry map[identity]struct{}

func identityOf(v any) (identity, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{ptr: rv.Pointer(), typ: rv.Type()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return identity{}, false
		}
		return identity{ptr: rv.Pointer(), len: rv.Len(), typ: rv.Type()}, true
	}
	return identity{}, false
}

func (a ancestry) contains(v any) bool {
	id, ok := identityOf(v)
	if !ok {
		return false
	}
	_, found := a[id]
	return found
}

func (a ancestry) with(v any) ancestry {
	id, ok := identityOf(v)
	if !ok {
		return a
	}
	next := make(ancestry, len(a)+1)
	maps.Copy(next, a)
	next[id] = struct{}{}
	return next
}

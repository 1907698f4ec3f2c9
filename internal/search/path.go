package search

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Root is the path of the searched value itself.
const Root = "root"

// indexPath appends "[key]", quoting string keys.
func indexPath(parent string, key any) string {
	return parent + "[" + formatKey(key) + "]"
}

// attrPath appends ".name".
func attrPath(parent string, name any) string {
	return parent + "." + fmt.Sprint(name)
}

func formatKey(key any) string {
	switch k := key.(type) {
	case string:
		return "'" + k + "'"
	case int:
		return strconv.Itoa(k)
	}
	if rv := reflect.ValueOf(key); rv.Kind() == reflect.String {
		return "'" + rv.String() + "'"
	}
	return fmt.Sprint(key)
}

// compareKeys orders map keys of mixed dynamic types: first by kind, then by
// natural order within numeric and string kinds, then by printed form.
func compareKeys(a, b reflect.Value) int {
	a, b = unwrapInterface(a), unwrapInterface(b)
	if !a.IsValid() || !b.IsValid() {
		return cmp.Compare(boolInt(a.IsValid()), boolInt(b.IsValid()))
	}
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
	}
	return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func unwrapInterface(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

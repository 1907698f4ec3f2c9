package search

import (
	"math"
	"math/big"
	"reflect"
	"strings"
	"time"
)

func isString(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return true
	case reflect.Slice:
		return rv.Type().Elem().Kind() == reflect.Uint8
	}
	return false
}

func asString(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return string(rv.Bytes())
}

// isNumber reports whether v compares by equality: numeric kinds, bool and
// the exact-value types time.Time and math/big.
func isNumber(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time, *big.Int, *big.Float, *big.Rat:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

func isScalar(v any) bool {
	return v == nil || isString(v) || isNumber(v)
}

// equal is the element comparison used by the sequence visitor. Numbers
// compare by value across kinds, but a bool never equals a number.
func equal(node, item any) bool {
	node, item = indirect(node), indirect(item)
	switch ns, is := isScalar(node), isScalar(item); {
	case ns && is:
		return scalarEqual(node, item)
	case ns != is:
		return false
	}
	return reflect.DeepEqual(node, item)
}

func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if isString(a) || isString(b) {
		return isString(a) && isString(b) && asString(a) == asString(b)
	}
	if ta, ok := asTime(a); ok {
		tb, ok := asTime(b)
		return ok && ta.Equal(tb)
	}
	if _, ok := asTime(b); ok {
		return false
	}
	if ba, ok := asBool(a); ok {
		bb, ok := asBool(b)
		return ok && ba == bb
	}
	if _, ok := asBool(b); ok {
		return false
	}
	if isComplex(a) || isComplex(b) {
		ca, okA := asComplex(a)
		cb, okB := asComplex(b)
		return okA && okB && ca == cb
	}
	fa, floatA := asFloat(a)
	fb, floatB := asFloat(b)
	if (floatA && !finite(fa)) || (floatB && !finite(fb)) {
		return floatA && floatB && fa == fb
	}
	ra, okA := asRat(a)
	rb, okB := asRat(b)
	return okA && okB && ra.Cmp(rb) == 0
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}

func asBool(v any) (bool, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Bool {
		return rv.Bool(), true
	}
	return false, false
}

func isComplex(v any) bool {
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Complex64 || k == reflect.Complex128
}

func asComplex(v any) (complex128, bool) {
	if isComplex(v) {
		return reflect.ValueOf(v).Complex(), true
	}
	if f, ok := asFloat(v); ok {
		return complex(f, 0), true
	}
	if r, ok := asRat(v); ok {
		f, _ := r.Float64()
		return complex(f, 0), true
	}
	return 0, false
}

// asFloat reports the float64 form of binary floating point values only.
func asFloat(v any) (float64, bool) {
	if bf, ok := v.(*big.Float); ok && bf != nil {
		if bf.IsInf() {
			return math.Inf(bf.Sign()), true
		}
		f, _ := bf.Float64()
		return f, true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// asRat converts finite real numbers to an exact rational.
func asRat(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, false
		}
		return new(big.Rat).SetInt(n), true
	case *big.Rat:
		return n, n != nil
	case *big.Float:
		if n == nil || n.IsInf() {
			return nil, false
		}
		r, _ := n.Rat(nil)
		return r, true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Rat).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); finite(f) {
			return new(big.Rat).SetFloat64(f), true
		}
	}
	return nil, false
}

func (st *state) visitString(node any, path string) {
	if strings.Contains(asString(node), asString(st.item)) {
		st.result.MatchedValues.record(path, node)
	}
}

func (st *state) visitNumber(node any, path string) {
	if scalarEqual(node, st.item) {
		st.result.MatchedValues.record(path, node)
	}
}

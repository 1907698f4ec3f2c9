package search

import (
	"reflect"

	"google.golang.org/protobuf/proto"
)

// Field is a named value exposed by a Record.
type Field struct {
	Name  string
	Value any
}

// Record is implemented by values that present themselves as an ordered list
// of named fields. Arrays implementing Record are walked as objects rather
// than as sequences.
type Record interface {
	Fields() []Field
}

// Slotted is implemented by values that restrict which attributes are read.
// Each slot names an exported field or an exported method taking no arguments
// and returning one value. A slot that resolves to neither makes the value
// unprocessable.
type Slotted interface {
	Slots() []string
}

type objectShape int

const (
	shapeOpaque objectShape = iota
	shapeRecord
	shapeSlots
	shapeFields
)

func (s objectShape) String() string {
	switch s {
	case shapeRecord:
		return "record"
	case shapeSlots:
		return "slots"
	case shapeFields:
		return "fields"
	default:
		return "opaque"
	}
}

type object struct {
	shape  objectShape
	fields []Field
}

// classifyObject decides once how a generic object exposes its attributes.
func classifyObject(v any) object {
	switch o := v.(type) {
	case proto.Message:
		return object{shape: shapeRecord, fields: protoFields(o)}
	case Record:
		return object{shape: shapeRecord, fields: o.Fields()}
	case Slotted:
		if fields, ok := slotFields(v, o.Slots()); ok {
			return object{shape: shapeSlots, fields: fields}
		}
		return object{shape: shapeOpaque}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return object{shape: shapeOpaque}
	}
	fields, ok := structFields(rv)
	if !ok {
		return object{shape: shapeOpaque}
	}
	return object{shape: shapeFields, fields: fields}
}

// structFields lists exported fields in declaration order. A struct with
// fields but none readable reports false.
func structFields(rv reflect.Value) ([]Field, bool) {
	t := rv.Type()
	fields := make([]Field, 0, t.NumField())
	exported := 0
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		exported++
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("search"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		fields = append(fields, Field{Name: name, Value: rv.Field(i).Interface()})
	}
	if exported == 0 && t.NumField() > 0 {
		return nil, false
	}
	return fields, true
}

func slotFields(v any, slots []string) ([]Field, bool) {
	rv := reflect.ValueOf(v)
	elem := rv
	if elem.Kind() == reflect.Pointer && !elem.IsNil() {
		elem = elem.Elem()
	}
	fields := make([]Field, 0, len(slots))
	for _, name := range slots {
		if m := rv.MethodByName(name); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
			fields = append(fields, Field{Name: name, Value: m.Call(nil)[0].Interface()})
			continue
		}
		if elem.Kind() == reflect.Struct {
			if sf, ok := elem.Type().FieldByName(name); ok && sf.IsExported() {
				fields = append(fields, Field{Name: name, Value: elem.FieldByIndex(sf.Index).Interface()})
				continue
			}
		}
		return nil, false
	}
	return fields, true
}

func (st *state) visitObject(node any, path string, anc ancestry) {
	obj := classifyObject(node)
	if obj.shape == shapeOpaque {
		st.result.Unprocessed = append(st.result.Unprocessed, path)
		return
	}
	st.visitMapping(fieldEntries(obj.fields), path, anc, true)
}

func fieldEntries(fields []Field) []entry {
	entries := make([]entry, len(fields))
	for i, f := range fields {
		entries[i] = entry{key: f.Name, value: f.Value}
	}
	return entries
}

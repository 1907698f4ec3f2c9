package search

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// protoFields lists the populated fields of m in declaration order. Nested
// messages stay proto.Message values so the walk keeps their identity; lists
// become []any and maps become map[any]any.
func protoFields(m proto.Message) []Field {
	pm := m.ProtoReflect()
	if !pm.IsValid() {
		return nil
	}
	fds := pm.Descriptor().Fields()
	fields := make([]Field, 0, fds.Len())
	for i := range fds.Len() {
		fd := fds.Get(i)
		if !pm.Has(fd) {
			continue
		}
		fields = append(fields, Field{Name: string(fd.Name()), Value: protoValue(fd, pm.Get(fd))})
	}
	return fields
}

func protoValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch {
	case fd.IsList():
		l := v.List()
		out := make([]any, l.Len())
		for i := range l.Len() {
			out[i] = protoSingular(fd, l.Get(i))
		}
		return out
	case fd.IsMap():
		mv := fd.MapValue()
		out := make(map[any]any, v.Map().Len())
		v.Map().Range(func(k protoreflect.MapKey, val protoreflect.Value) bool {
			out[k.Interface()] = protoSingular(mv, val)
			return true
		})
		return out
	default:
		return protoSingular(fd, v)
	}
}

func protoSingular(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return v.Message().Interface()
	case protoreflect.EnumKind:
		if ev := fd.Enum().Values().ByNumber(v.Enum()); ev != nil {
			return string(ev.Name())
		}
		return int32(v.Enum())
	default:
		return v.Interface()
	}
}

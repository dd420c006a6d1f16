package schema

import "google.golang.org/protobuf/reflect/protoreflect"

// IntValue wraps v in the value type matching the integer kind of fd
func IntValue(fd protoreflect.FieldDescriptor, v int64) protoreflect.Value {
	switch fd.Kind() {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return protoreflect.ValueOfInt32(int32(v))
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return protoreflect.ValueOfUint32(uint32(v))
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return protoreflect.ValueOfUint64(uint64(v))
	default:
		return protoreflect.ValueOfInt64(v)
	}
}

// IntOf reads an integer value of the kind of fd
func IntOf(fd protoreflect.FieldDescriptor, v protoreflect.Value) int64 {
	switch fd.Kind() {
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind, protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return int64(v.Uint())
	default:
		return v.Int()
	}
}

// NumberValue wraps v in the value type matching the numeric kind of fd.
// Integer kinds truncate, Validate rejects values that would lose precision.
func NumberValue(fd protoreflect.FieldDescriptor, v float64) protoreflect.Value {
	switch fd.Kind() {
	case protoreflect.DoubleKind:
		return protoreflect.ValueOfFloat64(v)
	case protoreflect.FloatKind:
		return protoreflect.ValueOfFloat32(float32(v))
	default:
		return IntValue(fd, int64(v))
	}
}

// NumberOf reads a numeric value of the kind of fd
func NumberOf(fd protoreflect.FieldDescriptor, v protoreflect.Value) float64 {
	switch fd.Kind() {
	case protoreflect.DoubleKind, protoreflect.FloatKind:
		return v.Float()
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind, protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return float64(v.Uint())
	default:
		return float64(v.Int())
	}
}

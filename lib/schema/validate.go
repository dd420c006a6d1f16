package schema

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/ValentinKolb/cbench/lib/record"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Validate checks every record of the batch against the declared field kinds.
// It returns an error wrapping ErrValidation for the first offending field.
func (s *Schema) Validate(batch record.Batch) error {
	f := s.fields
	for i, r := range batch {
		if err := checkInteger(f.ID, r.ID); err != nil {
			return invalid(i, f.ID, err)
		}
		if err := checkNumber(f.Salary, r.Salary); err != nil {
			return invalid(i, f.Salary, err)
		}
		for _, sf := range []struct {
			fd protoreflect.FieldDescriptor
			v  string
		}{
			{f.Name, r.Name},
			{f.Email, r.Email},
			{f.HireDate, r.HireDate},
			{f.Position, r.Position},
			{f.Department, r.Department},
		} {
			if !utf8.ValidString(sf.v) {
				return invalid(i, sf.fd, fmt.Errorf("string is not valid UTF-8"))
			}
		}
	}
	return nil
}

func invalid(index int, fd protoreflect.FieldDescriptor, err error) error {
	return fmt.Errorf("%w: record %d: field %s: %v", ErrValidation, index, fd.Name(), err)
}

// checkInteger reports whether v fits the integer kind of fd
func checkInteger(fd protoreflect.FieldDescriptor, v int64) error {
	var lo, hi int64
	switch fd.Kind() {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		lo, hi = math.MinInt32, math.MaxInt32
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		lo, hi = 0, math.MaxUint32
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		lo, hi = 0, math.MaxInt64
	default:
		return nil
	}
	if v < lo || v > hi {
		return fmt.Errorf("value %d out of range for %s", v, fd.Kind())
	}
	return nil
}

// checkNumber reports whether v can be stored in the numeric kind of fd without loss
func checkNumber(fd protoreflect.FieldDescriptor, v float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("value is NaN")
	}
	switch fd.Kind() {
	case protoreflect.DoubleKind:
		return nil
	case protoreflect.FloatKind:
		if !math.IsInf(v, 0) && float64(float32(v)) != v {
			return fmt.Errorf("value %v is not representable as %s", v, fd.Kind())
		}
		return nil
	default:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %v is not an integer (%s)", v, fd.Kind())
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return fmt.Errorf("value %v out of range for %s", v, fd.Kind())
		}
		return checkInteger(fd, int64(v))
	}
}

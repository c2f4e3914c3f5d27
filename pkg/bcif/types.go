package bcif

import (
	"github.com/ajitpratap0/bcifpack/pkg/errors"
)

// Kind is the logical element kind of an array.
type Kind int

const (
	// KindInt marks arrays of integer values
	KindInt Kind = iota
	// KindFloat marks arrays of floating point values
	KindFloat
	// KindString marks arrays of string values
	KindString
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// DataType is a BinaryCIF storage type code. The numeric values are part of
// the wire format.
type DataType uint8

const (
	// TypeInt8 is a signed 8-bit integer
	TypeInt8 DataType = 1
	// TypeInt16 is a signed 16-bit integer
	TypeInt16 DataType = 2
	// TypeInt32 is a signed 32-bit integer
	TypeInt32 DataType = 3
	// TypeUint8 is an unsigned 8-bit integer
	TypeUint8 DataType = 4
	// TypeUint16 is an unsigned 16-bit integer
	TypeUint16 DataType = 5
	// TypeUint32 is an unsigned 32-bit integer
	TypeUint32 DataType = 6
	// TypeFloat32 is a 32-bit IEEE-754 value
	TypeFloat32 DataType = 32
	// TypeFloat64 is a 64-bit IEEE-754 value
	TypeFloat64 DataType = 33
)

// IsInteger reports whether t is one of the integer storage types.
func (t DataType) IsInteger() bool {
	return t >= TypeInt8 && t <= TypeUint32
}

// IsFloat reports whether t is one of the floating point storage types.
func (t DataType) IsFloat() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// Size returns the width of t in bytes.
func (t DataType) Size() int {
	switch t {
	case TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt32, TypeUint32, TypeFloat32:
		return 4
	case TypeFloat64:
		return 8
	default:
		return 0
	}
}

// Bounds returns the representable value range of an integer storage type.
func (t DataType) Bounds() (min, max int64) {
	switch t {
	case TypeInt8:
		return -1 << 7, 1<<7 - 1
	case TypeInt16:
		return -1 << 15, 1<<15 - 1
	case TypeInt32:
		return -1 << 31, 1<<31 - 1
	case TypeUint8:
		return 0, 1<<8 - 1
	case TypeUint16:
		return 0, 1<<16 - 1
	case TypeUint32:
		return 0, 1<<32 - 1
	default:
		return 0, 0
	}
}

// String returns the conventional name of the storage type.
func (t DataType) String() string {
	switch t {
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	default:
		return "invalid"
	}
}

// Array is an immutable typed homogeneous sequence of values. Integer values
// are held as int64 and floating point values as float64 regardless of the
// declared storage type; the storage type governs how the values are written
// by the terminal ByteArray encoding.
type Array struct {
	kind Kind
	typ  DataType // zero for string arrays

	ints    []int64
	floats  []float64
	strings []string
}

// NewIntArray creates an integer array with the given storage type.
// The slice is retained, not copied.
func NewIntArray(values []int64, typ DataType) *Array {
	return &Array{kind: KindInt, typ: typ, ints: values}
}

// NewFloatArray creates a floating point array with the given storage type
// (TypeFloat32 or TypeFloat64). The slice is retained, not copied.
func NewFloatArray(values []float64, typ DataType) *Array {
	return &Array{kind: KindFloat, typ: typ, floats: values}
}

// NewStringArray creates a string array. The slice is retained, not copied.
func NewStringArray(values []string) *Array {
	return &Array{kind: KindString, strings: values}
}

// Kind returns the logical element kind.
func (a *Array) Kind() Kind { return a.kind }

// Type returns the declared storage type. String arrays have no storage type
// and return zero.
func (a *Array) Type() DataType { return a.typ }

// Len returns the number of elements.
func (a *Array) Len() int {
	switch a.kind {
	case KindInt:
		return len(a.ints)
	case KindFloat:
		return len(a.floats)
	default:
		return len(a.strings)
	}
}

// Ints returns the backing integer slice. The caller must not modify it.
func (a *Array) Ints() []int64 { return a.ints }

// Floats returns the backing float slice. The caller must not modify it.
func (a *Array) Floats() []float64 { return a.floats }

// Strings returns the backing string slice. The caller must not modify it.
func (a *Array) Strings() []string { return a.strings }

// intRange returns the minimum and maximum of an integer array.
// Both are zero for empty arrays.
func (a *Array) intRange() (min, max int64) {
	if len(a.ints) == 0 {
		return 0, 0
	}
	min, max = a.ints[0], a.ints[0]
	for _, v := range a.ints[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// narrowCandidates lists integer storage types from narrowest to widest,
// unsigned first so that non-negative arrays prefer unsigned storage.
var narrowCandidates = struct {
	unsigned []DataType
	signed   []DataType
}{
	unsigned: []DataType{TypeUint8, TypeUint16, TypeUint32},
	signed:   []DataType{TypeInt8, TypeInt16, TypeInt32},
}

// Narrow returns an integer array re-typed to the smallest storage type that
// can represent all of its values, preferring unsigned types when the minimum
// is non-negative. If the array already carries the narrowest type it is
// returned unchanged. Values outside any 32-bit range cannot be stored in a
// BinaryCIF byte array and yield a validation error.
func Narrow(a *Array) (*Array, error) {
	if a.kind != KindInt {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"cannot narrow %s array", a.kind)
	}
	min, max := a.intRange()
	candidates := narrowCandidates.signed
	if min >= 0 {
		candidates = narrowCandidates.unsigned
	}
	for _, typ := range candidates {
		lo, hi := typ.Bounds()
		if min >= lo && max <= hi {
			if typ == a.typ {
				return a, nil
			}
			return NewIntArray(a.ints, typ), nil
		}
	}
	return nil, errors.Newf(errors.ErrorTypeValidation,
		"integer range [%d, %d] exceeds all 32-bit storage types", min, max)
}

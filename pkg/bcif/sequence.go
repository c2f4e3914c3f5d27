package bcif

import (
	"github.com/ajitpratap0/bcifpack/pkg/errors"
)

// DeltaEncoding stores each element as the signed difference from its
// predecessor. The first element becomes the encoding's origin and is stored
// as a zero delta. Beneficial for monotonic or slowly varying sequences.
type DeltaEncoding struct {
	// Origin is the first element of the source array.
	Origin int64
	// SrcType is the storage type of the source array.
	SrcType DataType
}

// NewDeltaEncoding creates a Delta encoding. Origin and source type are
// recorded during encoding.
func NewDeltaEncoding() *DeltaEncoding { return &DeltaEncoding{} }

// Kind returns the wire name of the encoding.
func (e *DeltaEncoding) Kind() string { return KindDelta }

func (e *DeltaEncoding) params() (interface{}, error) {
	return deltaParams{Kind: KindDelta, Origin: e.Origin, SrcType: e.SrcType}, nil
}

// Encode replaces each element with the difference from its predecessor.
// The output is an int32 array; deltas outside the int32 range cannot be
// represented and yield a validation error.
func (e *DeltaEncoding) Encode(a *Array) (*Array, error) {
	if a.Kind() != KindInt {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"delta encoding requires an integer array, got %s", a.Kind())
	}
	e.SrcType = a.Type()

	src := a.Ints()
	deltas := make([]int64, len(src))
	if len(src) > 0 {
		e.Origin = src[0]
		lo, hi := TypeInt32.Bounds()
		for i := 1; i < len(src); i++ {
			d := src[i] - src[i-1]
			if d < lo || d > hi {
				return nil, errors.Newf(errors.ErrorTypeValidation,
					"delta %d out of int32 range", d)
			}
			deltas[i] = d
		}
	}
	return NewIntArray(deltas, TypeInt32), nil
}

// Decode reverses Encode by prefix summation from the origin.
func (e *DeltaEncoding) Decode(a *Array) (*Array, error) {
	if a.Kind() != KindInt {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"delta decoding requires an integer array, got %s", a.Kind())
	}
	deltas := a.Ints()
	values := make([]int64, len(deltas))
	// The first stored delta is zero, so the sum starts at the origin.
	current := e.Origin
	for i, d := range deltas {
		current += d
		values[i] = current
	}
	return NewIntArray(values, e.SrcType), nil
}

// RunLengthEncoding stores an integer array as alternating (value, count)
// pairs. Beneficial for arrays with long runs of repeated values.
type RunLengthEncoding struct {
	// SrcType is the storage type of the source array.
	SrcType DataType
	// SrcSize is the length of the source array.
	SrcSize int
}

// NewRunLengthEncoding creates a RunLength encoding. Source type and size are
// recorded during encoding.
func NewRunLengthEncoding() *RunLengthEncoding { return &RunLengthEncoding{} }

// Kind returns the wire name of the encoding.
func (e *RunLengthEncoding) Kind() string { return KindRunLength }

func (e *RunLengthEncoding) params() (interface{}, error) {
	return runLengthParams{Kind: KindRunLength, SrcType: e.SrcType, SrcSize: e.SrcSize}, nil
}

// Encode emits alternating (value, count) pairs as an int32 array.
func (e *RunLengthEncoding) Encode(a *Array) (*Array, error) {
	if a.Kind() != KindInt {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"run-length encoding requires an integer array, got %s", a.Kind())
	}
	src := a.Ints()
	e.SrcType = a.Type()
	e.SrcSize = len(src)

	lo, hi := TypeInt32.Bounds()
	pairs := make([]int64, 0, 16)
	for i := 0; i < len(src); {
		value := src[i]
		if value < lo || value > hi {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"run value %d out of int32 range", value)
		}
		j := i + 1
		for j < len(src) && src[j] == value {
			j++
		}
		pairs = append(pairs, value, int64(j-i))
		i = j
	}
	return NewIntArray(pairs, TypeInt32), nil
}

// Decode expands the (value, count) pairs back into the source array.
func (e *RunLengthEncoding) Decode(a *Array) (*Array, error) {
	if a.Kind() != KindInt {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"run-length decoding requires an integer array, got %s", a.Kind())
	}
	pairs := a.Ints()
	if len(pairs)%2 != 0 {
		return nil, errors.Newf(errors.ErrorTypeData,
			"run-length data has odd length %d", len(pairs))
	}
	values := make([]int64, 0, e.SrcSize)
	for i := 0; i < len(pairs); i += 2 {
		value, count := pairs[i], pairs[i+1]
		if count < 0 {
			return nil, errors.Newf(errors.ErrorTypeData, "negative run length %d", count)
		}
		for n := int64(0); n < count; n++ {
			values = append(values, value)
		}
	}
	if e.SrcSize != 0 && len(values) != e.SrcSize {
		return nil, errors.Newf(errors.ErrorTypeData,
			"run-length decoded %d values, expected %d", len(values), e.SrcSize)
	}
	return NewIntArray(values, e.SrcType), nil
}

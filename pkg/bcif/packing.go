package bcif

import (
	"github.com/ajitpratap0/bcifpack/pkg/errors"
)

// IntegerPackingEncoding repacks integers into a narrower 1 or 2 byte
// representation. Values exceeding the packed range are split into a chain of
// boundary sentinels followed by the remainder, so occasional outliers do not
// force a wider storage type for the whole array.
type IntegerPackingEncoding struct {
	// ByteCount is the packed width, 1 or 2 bytes.
	ByteCount int
	// SrcSize is the length of the source array.
	SrcSize int
	// IsUnsigned reports whether the packed values use an unsigned type.
	// It is chosen from the source array's minimum during encoding.
	IsUnsigned bool

	srcType DataType
}

// NewIntegerPackingEncoding creates an IntegerPacking encoding with the given
// packed byte width (1 or 2).
func NewIntegerPackingEncoding(byteCount int) *IntegerPackingEncoding {
	return &IntegerPackingEncoding{ByteCount: byteCount}
}

// Kind returns the wire name of the encoding.
func (e *IntegerPackingEncoding) Kind() string { return KindIntegerPacking }

func (e *IntegerPackingEncoding) params() (interface{}, error) {
	if e.ByteCount != 1 && e.ByteCount != 2 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"invalid packing byte count %d", e.ByteCount)
	}
	return integerPackingParams{
		Kind:       KindIntegerPacking,
		ByteCount:  e.ByteCount,
		SrcSize:    e.SrcSize,
		IsUnsigned: e.IsUnsigned,
	}, nil
}

// packedType returns the storage type of the packed representation together
// with its boundary values.
func (e *IntegerPackingEncoding) packedType() (typ DataType, lower, upper int64, err error) {
	switch {
	case e.ByteCount == 1 && e.IsUnsigned:
		typ = TypeUint8
	case e.ByteCount == 2 && e.IsUnsigned:
		typ = TypeUint16
	case e.ByteCount == 1:
		typ = TypeInt8
	case e.ByteCount == 2:
		typ = TypeInt16
	default:
		return 0, 0, 0, errors.Newf(errors.ErrorTypeValidation,
			"invalid packing byte count %d", e.ByteCount)
	}
	lower, upper = typ.Bounds()
	return typ, lower, upper, nil
}

// Encode packs the array into the narrow representation, chaining boundary
// sentinels for out-of-range values.
func (e *IntegerPackingEncoding) Encode(a *Array) (*Array, error) {
	if a.Kind() != KindInt {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"integer packing requires an integer array, got %s", a.Kind())
	}
	src := a.Ints()
	min, _ := a.intRange()
	e.SrcSize = len(src)
	e.IsUnsigned = min >= 0
	e.srcType = a.Type()

	typ, lower, upper, err := e.packedType()
	if err != nil {
		return nil, err
	}

	packed := make([]int64, 0, len(src))
	for _, v := range src {
		for v >= upper {
			packed = append(packed, upper)
			v -= upper
		}
		for v <= lower && lower != 0 {
			packed = append(packed, lower)
			v -= lower
		}
		packed = append(packed, v)
	}
	return NewIntArray(packed, typ), nil
}

// Decode reassembles the source values by summing sentinel chains.
func (e *IntegerPackingEncoding) Decode(a *Array) (*Array, error) {
	if a.Kind() != KindInt {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"integer unpacking requires an integer array, got %s", a.Kind())
	}
	_, lower, upper, err := e.packedType()
	if err != nil {
		return nil, err
	}

	srcType := e.srcType
	if srcType == 0 {
		srcType = TypeInt32
	}

	packed := a.Ints()
	values := make([]int64, 0, e.SrcSize)
	var acc int64
	pending := false
	for _, t := range packed {
		acc += t
		pending = true
		if t == upper || (lower != 0 && t == lower) {
			continue
		}
		values = append(values, acc)
		acc = 0
		pending = false
	}
	if pending {
		return nil, errors.New(errors.ErrorTypeData,
			"integer packing data ends inside a sentinel chain")
	}
	if e.SrcSize != 0 && len(values) != e.SrcSize {
		return nil, errors.Newf(errors.ErrorTypeData,
			"integer packing decoded %d values, expected %d", len(values), e.SrcSize)
	}
	return NewIntArray(values, srcType), nil
}

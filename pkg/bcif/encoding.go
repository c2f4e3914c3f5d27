package bcif

import (
	"encoding/binary"
	"math"

	"github.com/ajitpratap0/bcifpack/pkg/errors"
)

// Encoding kind names as they appear on the wire.
const (
	KindByteArray            = "ByteArray"
	KindFixedPoint           = "FixedPoint"
	KindIntervalQuantization = "IntervalQuantization"
	KindRunLength            = "RunLength"
	KindDelta                = "Delta"
	KindIntegerPacking       = "IntegerPacking"
	KindStringArray          = "StringArray"
)

// Encoding is a named, parameterized, reversible transform. Its parameters
// are serialized next to the data so a reader can invert the pipeline without
// external context.
type Encoding interface {
	// Kind returns the wire name of the encoding.
	Kind() string
	// params returns the msgpack-serializable parameter record.
	params() (interface{}, error)
}

// ArrayEncoding is an encoding that maps an array to another array.
// All non-terminal pipeline stages implement it.
type ArrayEncoding interface {
	Encoding
	Encode(a *Array) (*Array, error)
	Decode(a *Array) (*Array, error)
}

// TerminalEncoding is an encoding that maps an array to its final byte
// representation. Every pipeline ends in exactly one terminal encoding.
type TerminalEncoding interface {
	Encoding
	EncodeBytes(a *Array) ([]byte, error)
	DecodeBytes(b []byte) (*Array, error)
}

// ByteArrayEncoding dumps a fixed-width numeric array as little-endian bytes.
// It is always valid and lossless, and serves as the worst-case fallback for
// every numeric array.
type ByteArrayEncoding struct {
	// Type is the storage type of the encoded values. It is recorded
	// during encoding and required for decoding.
	Type DataType
}

// NewByteArrayEncoding creates a ByteArray encoding. The storage type is
// taken from the array at encode time.
func NewByteArrayEncoding() *ByteArrayEncoding { return &ByteArrayEncoding{} }

// Kind returns the wire name of the encoding.
func (e *ByteArrayEncoding) Kind() string { return KindByteArray }

func (e *ByteArrayEncoding) params() (interface{}, error) {
	if e.Type == 0 {
		return nil, errors.New(errors.ErrorTypeInternal, "byte array encoding has no storage type")
	}
	return byteArrayParams{Kind: KindByteArray, Type: e.Type}, nil
}

// EncodeBytes writes the array values as fixed-width little-endian bytes
// according to the array's storage type.
func (e *ByteArrayEncoding) EncodeBytes(a *Array) ([]byte, error) {
	typ := a.Type()
	if typ == 0 {
		return nil, errors.New(errors.ErrorTypeValidation,
			"byte array encoding requires a numeric array")
	}
	e.Type = typ

	out := make([]byte, 0, a.Len()*typ.Size())
	if typ.IsFloat() {
		for _, v := range a.Floats() {
			if typ == TypeFloat32 {
				out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(v)))
			} else {
				out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
			}
		}
		return out, nil
	}

	lo, hi := typ.Bounds()
	for _, v := range a.Ints() {
		if v < lo || v > hi {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"value %d out of range for %s", v, typ)
		}
		switch typ.Size() {
		case 1:
			out = append(out, byte(uint8(v)))
		case 2:
			out = binary.LittleEndian.AppendUint16(out, uint16(v))
		default:
			out = binary.LittleEndian.AppendUint32(out, uint32(v))
		}
	}
	return out, nil
}

// DecodeBytes reverses EncodeBytes using the recorded storage type.
func (e *ByteArrayEncoding) DecodeBytes(b []byte) (*Array, error) {
	typ := e.Type
	width := typ.Size()
	if width == 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"invalid byte array storage type %d", typ)
	}
	if len(b)%width != 0 {
		return nil, errors.Newf(errors.ErrorTypeData,
			"byte array length %d is not a multiple of element width %d", len(b), width)
	}
	n := len(b) / width

	if typ.IsFloat() {
		values := make([]float64, n)
		for i := 0; i < n; i++ {
			if typ == TypeFloat32 {
				bits := binary.LittleEndian.Uint32(b[i*4:])
				values[i] = float64(math.Float32frombits(bits))
			} else {
				bits := binary.LittleEndian.Uint64(b[i*8:])
				values[i] = math.Float64frombits(bits)
			}
		}
		return NewFloatArray(values, typ), nil
	}

	values := make([]int64, n)
	for i := 0; i < n; i++ {
		switch typ {
		case TypeInt8:
			values[i] = int64(int8(b[i]))
		case TypeUint8:
			values[i] = int64(b[i])
		case TypeInt16:
			values[i] = int64(int16(binary.LittleEndian.Uint16(b[i*2:])))
		case TypeUint16:
			values[i] = int64(binary.LittleEndian.Uint16(b[i*2:]))
		case TypeInt32:
			values[i] = int64(int32(binary.LittleEndian.Uint32(b[i*4:])))
		case TypeUint32:
			values[i] = int64(binary.LittleEndian.Uint32(b[i*4:]))
		}
	}
	return NewIntArray(values, typ), nil
}

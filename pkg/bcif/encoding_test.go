package bcif

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripInts(t *testing.T, enc ArrayEncoding, values []int64, typ DataType) {
	t.Helper()
	encoded, err := enc.Encode(NewIntArray(values, typ))
	require.NoError(t, err)
	decoded, err := enc.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Ints())
	assert.Equal(t, typ, decoded.Type())
}

func TestByteArrayRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		typ    DataType
	}{
		{"int8", []int64{-128, -1, 0, 1, 127}, TypeInt8},
		{"uint8", []int64{0, 1, 128, 255}, TypeUint8},
		{"int16", []int64{-32768, 0, 32767}, TypeInt16},
		{"uint16", []int64{0, 40000, 65535}, TypeUint16},
		{"int32", []int64{math.MinInt32, -7, 0, math.MaxInt32}, TypeInt32},
		{"uint32", []int64{0, 1 << 31, 1<<32 - 1}, TypeUint32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewByteArrayEncoding()
			b, err := enc.EncodeBytes(NewIntArray(tt.values, tt.typ))
			require.NoError(t, err)
			assert.Len(t, b, len(tt.values)*tt.typ.Size())

			decoded, err := enc.DecodeBytes(b)
			require.NoError(t, err)
			assert.Equal(t, tt.values, decoded.Ints())
			assert.Equal(t, tt.typ, decoded.Type())
		})
	}
}

func TestByteArrayFloatRoundTrip(t *testing.T) {
	values64 := []float64{0, -1.5, 3.14159, math.MaxFloat64}
	enc := NewByteArrayEncoding()
	b, err := enc.EncodeBytes(NewFloatArray(values64, TypeFloat64))
	require.NoError(t, err)
	decoded, err := enc.DecodeBytes(b)
	require.NoError(t, err)
	assert.Equal(t, values64, decoded.Floats())

	// float32 values must already be float32 representable
	values32 := []float64{
		float64(float32(1.25)),
		float64(float32(-7.75)),
		float64(float32(1e-3)),
	}
	enc = NewByteArrayEncoding()
	b, err = enc.EncodeBytes(NewFloatArray(values32, TypeFloat32))
	require.NoError(t, err)
	assert.Len(t, b, len(values32)*4)
	decoded, err = enc.DecodeBytes(b)
	require.NoError(t, err)
	assert.Equal(t, values32, decoded.Floats())
}

func TestByteArrayRejectsOutOfRange(t *testing.T) {
	enc := NewByteArrayEncoding()
	_, err := enc.EncodeBytes(NewIntArray([]int64{300}, TypeUint8))
	require.Error(t, err)
}

func TestDeltaRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		typ    DataType
	}{
		{"monotonic", []int64{100, 101, 102, 105, 110}, TypeUint8},
		{"negative origin", []int64{-50, -49, -48}, TypeInt8},
		{"constant", []int64{7, 7, 7, 7}, TypeUint8},
		{"single", []int64{42}, TypeUint8},
		{"empty", []int64{}, TypeUint8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundTripInts(t, NewDeltaEncoding(), tt.values, tt.typ)
		})
	}
}

func TestDeltaOutputType(t *testing.T) {
	enc := NewDeltaEncoding()
	out, err := enc.Encode(NewIntArray([]int64{10, 12, 11}, TypeUint8))
	require.NoError(t, err)
	assert.Equal(t, TypeInt32, out.Type())
	assert.Equal(t, []int64{0, 2, -1}, out.Ints())
	assert.Equal(t, int64(10), enc.Origin)
}

func TestRunLengthRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
	}{
		{"runs", []int64{1, 1, 1, 1, 2, 2, 2, 2}},
		{"no runs", []int64{1, 2, 3, 4}},
		{"single run", []int64{9, 9, 9}},
		{"empty", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundTripInts(t, NewRunLengthEncoding(), tt.values, TypeUint8)
		})
	}
}

func TestRunLengthPairs(t *testing.T) {
	enc := NewRunLengthEncoding()
	out, err := enc.Encode(NewIntArray([]int64{1, 1, 1, 1, 2, 2, 2, 2}, TypeUint8))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 2, 4}, out.Ints())
	assert.Equal(t, 8, enc.SrcSize)
}

func TestIntegerPackingRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		values    []int64
		byteCount int
		unsigned  bool
	}{
		{"unsigned small", []int64{0, 1, 200, 255}, 1, true},
		{"unsigned overflow", []int64{0, 255, 256, 1000}, 1, true},
		{"signed overflow", []int64{0, 127, 128, -128, -129, 1000, -1000}, 1, false},
		{"two byte", []int64{0, 65535, 70000, 1 << 20}, 2, true},
		{"two byte signed", []int64{-40000, 32767, -32768, 100000}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewIntegerPackingEncoding(tt.byteCount)
			encoded, err := enc.Encode(NewIntArray(tt.values, TypeInt32))
			require.NoError(t, err)
			assert.Equal(t, tt.unsigned, enc.IsUnsigned)

			decoded, err := enc.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.values, decoded.Ints())
		})
	}
}

func TestIntegerPackingSentinelChain(t *testing.T) {
	enc := NewIntegerPackingEncoding(1)
	encoded, err := enc.Encode(NewIntArray([]int64{300}, TypeInt32))
	require.NoError(t, err)
	// 300 = 255 + 45 in unsigned one-byte packing
	assert.Equal(t, []int64{255, 45}, encoded.Ints())
	assert.Equal(t, TypeUint8, encoded.Type())
}

func TestFixedPointRoundTrip(t *testing.T) {
	values := []float64{1.25, -3.75, 0, 100.5}
	enc := NewFixedPointEncoding(100)
	encoded, err := enc.Encode(NewFloatArray(values, TypeFloat64))
	require.NoError(t, err)
	assert.Equal(t, []int64{125, -375, 0, 10050}, encoded.Ints())

	decoded, err := enc.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Floats())
}

func TestFixedPointTolerance(t *testing.T) {
	values := []float64{1.23456, 2.34567, -9.87654}
	enc := NewFixedPointEncoding(1000)
	encoded, err := enc.Encode(NewFloatArray(values, TypeFloat64))
	require.NoError(t, err)
	decoded, err := enc.Decode(encoded)
	require.NoError(t, err)
	for i, v := range values {
		rel := math.Abs(decoded.Floats()[i]-v) / math.Abs(v)
		assert.Less(t, rel, 1e-3)
	}
}

func TestFixedPointOverflow(t *testing.T) {
	enc := NewFixedPointEncoding(1e17)
	_, err := enc.Encode(NewFloatArray([]float64{1.0}, TypeFloat64))
	require.Error(t, err)
}

func TestIntervalQuantizationRoundTrip(t *testing.T) {
	enc := NewIntervalQuantizationEncoding(0, 10, 1001)
	values := []float64{0, 0.01, 5.55, 10}
	encoded, err := enc.Encode(NewFloatArray(values, TypeFloat64))
	require.NoError(t, err)
	decoded, err := enc.Decode(encoded)
	require.NoError(t, err)
	for i, v := range values {
		assert.InDelta(t, v, decoded.Floats()[i], 0.005)
	}
}

func TestStringArrayRoundTrip(t *testing.T) {
	values := []string{"AA", "BB", "AA", "CC", "AA"}
	enc := NewStringArrayEncoding()
	indices, offsets, err := enc.Build(NewStringArray(values))
	require.NoError(t, err)

	assert.Equal(t, []string{"AA", "BB", "CC"}, enc.UniqueStrings())
	assert.Equal(t, []int64{0, 1, 0, 2, 0}, indices.Ints())
	assert.Equal(t, []int64{0, 2, 4, 6}, offsets.Ints())

	b, err := enc.EncodeBytes(NewStringArray(values))
	require.NoError(t, err)
	decoded, err := enc.DecodeBytes(b)
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Strings())
}

func TestStringArrayEmptyStrings(t *testing.T) {
	values := []string{"", "x", "", "x"}
	enc := NewStringArrayEncoding()
	_, _, err := enc.Build(NewStringArray(values))
	require.NoError(t, err)

	b, err := enc.EncodeBytes(NewStringArray(values))
	require.NoError(t, err)
	decoded, err := enc.DecodeBytes(b)
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Strings())
}

func TestPipelineRoundTrip(t *testing.T) {
	values := []int64{100, 101, 102, 103, 104, 200, 200, 200, 200, 200}
	pipeline := []Encoding{
		NewDeltaEncoding(),
		NewRunLengthEncoding(),
		NewIntegerPackingEncoding(1),
		NewByteArrayEncoding(),
	}
	b, err := EncodeArray(NewIntArray(values, TypeUint8), pipeline)
	require.NoError(t, err)

	decoded, err := DecodeArray(b, pipeline)
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Ints())
	assert.Equal(t, TypeUint8, decoded.Type())
}

func TestPipelineRejectsMisplacedTerminal(t *testing.T) {
	_, err := EncodeArray(NewIntArray([]int64{1}, TypeUint8), []Encoding{
		NewByteArrayEncoding(),
		NewDeltaEncoding(),
	})
	require.Error(t, err)
}

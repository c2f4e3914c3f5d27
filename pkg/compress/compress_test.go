package compress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/bcifpack/pkg/bcif"
	"github.com/ajitpratap0/bcifpack/pkg/errors"
	"github.com/ajitpratap0/bcifpack/pkg/testutil"
)

func newTestCompressor(t *testing.T) *Compressor {
	cfg := DefaultConfig()
	cfg.Logger = testutil.TestLogger(t)
	return New(cfg)
}

func TestCompressDataShortArrays(t *testing.T) {
	c := newTestCompressor(t)

	for _, values := range [][]int64{{}, {42}} {
		arr := bcif.NewIntArray(values, bcif.TypeInt32)
		compressed, err := c.CompressData(bcif.NewData(arr))
		require.NoError(t, err)
		assert.Same(t, arr, compressed.Array())
		assert.Empty(t, compressed.Encodings())
	}
}

func TestCompressDataShortStringSerializes(t *testing.T) {
	c := newTestCompressor(t)

	for _, values := range [][]string{{}, {"ALA"}} {
		arr := bcif.NewStringArray(values)
		compressed, err := c.CompressData(bcif.NewData(arr))
		require.NoError(t, err)
		assert.Same(t, arr, compressed.Array())

		// The uncompressed result must still serialize and measure.
		size, err := compressed.EncodedSize()
		require.NoError(t, err)
		payload, err := compressed.Serialize()
		require.NoError(t, err)
		assert.Equal(t, len(payload), size)
	}
}

func TestCompressDataNilArray(t *testing.T) {
	c := newTestCompressor(t)
	_, err := c.CompressData(bcif.NewData(nil))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnsupported))
}

func TestCompressDataInt(t *testing.T) {
	c := newTestCompressor(t)
	values := testutil.IntRamp(100000, 100)
	arr := bcif.NewIntArray(values, bcif.TypeInt32)

	compressed, err := c.CompressData(bcif.NewData(arr))
	require.NoError(t, err)

	// Narrowed to the tightest storage type before the search.
	assert.Equal(t, bcif.TypeUint32, compressed.Array().Type())

	pipeline := compressed.Encodings()
	require.NotEmpty(t, pipeline)
	assert.Equal(t, bcif.KindDelta, pipeline[0].Kind())

	b, err := bcif.EncodeArray(compressed.Array(), pipeline)
	require.NoError(t, err)
	decoded, err := bcif.DecodeArray(b, pipeline)
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Ints())
}

func TestCompressDataIntNeverLarger(t *testing.T) {
	rng := testutil.Rand(3)
	values := make([]int64, 256)
	for i := range values {
		values[i] = rng.Int63n(1 << 30)
	}
	arr := bcif.NewIntArray(values, bcif.TypeInt32)

	c := newTestCompressor(t)
	compressed, err := c.CompressData(bcif.NewData(arr))
	require.NoError(t, err)

	rawSize, err := bcif.NewData(arr, bcif.NewByteArrayEncoding()).EncodedSize()
	require.NoError(t, err)
	compressedSize, err := compressed.EncodedSize()
	require.NoError(t, err)
	assert.LessOrEqual(t, compressedSize, rawSize)
}

func TestCompressDataString(t *testing.T) {
	c := newTestCompressor(t)
	values := []string{"AA", "BB", "AA", "CC", "AA"}
	arr := bcif.NewStringArray(values)

	compressed, err := c.CompressData(bcif.NewData(arr))
	require.NoError(t, err)

	pipeline := compressed.Encodings()
	require.Len(t, pipeline, 1)
	enc, ok := pipeline[0].(*bcif.StringArrayEncoding)
	require.True(t, ok)
	assert.Equal(t, []string{"AA", "BB", "CC"}, enc.UniqueStrings())
	assert.NotEmpty(t, enc.DataEncoding)
	assert.NotEmpty(t, enc.OffsetEncoding)

	b, err := bcif.EncodeArray(arr, pipeline)
	require.NoError(t, err)
	decoded, err := bcif.DecodeArray(b, pipeline)
	require.NoError(t, err)
	assert.Equal(t, values, decoded.Strings())
}

func TestCompressDataStringRepetitive(t *testing.T) {
	c := newTestCompressor(t)
	elements := make([]string, 0, 300)
	for i := 0; i < 100; i++ {
		elements = append(elements, "C", "C", "N")
	}
	arr := bcif.NewStringArray(elements)

	compressed, err := c.CompressData(bcif.NewData(arr))
	require.NoError(t, err)

	b, err := bcif.EncodeArray(arr, compressed.Encodings())
	require.NoError(t, err)
	decoded, err := bcif.DecodeArray(b, compressed.Encodings())
	require.NoError(t, err)
	assert.Equal(t, elements, decoded.Strings())
}

func TestCompressDataFloatQuantized(t *testing.T) {
	c := newTestCompressor(t)
	values := make([]float64, 200)
	for i := range values {
		values[i] = float64(i+1) * 0.01
	}
	arr := bcif.NewFloatArray(values, bcif.TypeFloat64)

	compressed, err := c.CompressData(bcif.NewData(arr))
	require.NoError(t, err)

	pipeline := compressed.Encodings()
	require.NotEmpty(t, pipeline)
	fixed, ok := pipeline[0].(*bcif.FixedPointEncoding)
	require.True(t, ok)
	assert.Equal(t, float64(100), fixed.Factor)

	compressedSize, err := compressed.EncodedSize()
	require.NoError(t, err)
	rawSize, err := bcif.NewData(arr).EncodedSize()
	require.NoError(t, err)
	assert.Less(t, compressedSize, rawSize)

	b, err := bcif.EncodeArray(arr, pipeline)
	require.NoError(t, err)
	decoded, err := bcif.DecodeArray(b, pipeline)
	require.NoError(t, err)
	for i, v := range values {
		rel := math.Abs(decoded.Floats()[i]-v) / math.Abs(v)
		assert.Less(t, rel, DefaultFloatTolerance)
	}
}

func TestCompressDataFloatTinyMagnitudes(t *testing.T) {
	c := newTestCompressor(t)
	values := make([]float64, 100)
	for i := range values {
		values[i] = 2.5e-20
	}
	arr := bcif.NewFloatArray(values, bcif.TypeFloat64)

	compressed, err := c.CompressData(bcif.NewData(arr))
	require.NoError(t, err)

	pipeline := compressed.Encodings()
	require.NotEmpty(t, pipeline)
	fixed, ok := pipeline[0].(*bcif.FixedPointEncoding)
	require.True(t, ok)
	assert.Greater(t, fixed.Factor, 1e17)

	b, err := bcif.EncodeArray(arr, pipeline)
	require.NoError(t, err)
	decoded, err := bcif.DecodeArray(b, pipeline)
	require.NoError(t, err)
	for i, v := range values {
		rel := math.Abs(decoded.Floats()[i]-v) / math.Abs(v)
		assert.Less(t, rel, DefaultFloatTolerance)
	}
}

func TestCompressDataFloatFallback(t *testing.T) {
	c := newTestCompressor(t)
	rng := testutil.Rand(11)
	values := make([]float64, 64)
	for i := range values {
		values[i] = float64(float32(1 + rng.Float64()))
	}
	arr := bcif.NewFloatArray(values, bcif.TypeFloat32)

	compressed, err := c.CompressData(bcif.NewData(arr))
	require.NoError(t, err)

	// Quantization cannot beat the raw dump here, so the original array is
	// reused and stored uncompressed.
	assert.Same(t, arr, compressed.Array())
	pipeline := compressed.Encodings()
	require.Len(t, pipeline, 1)
	assert.Equal(t, bcif.KindByteArray, pipeline[0].Kind())
}

func TestCompressDispatch(t *testing.T) {
	c := newTestCompressor(t)

	data := bcif.NewData(bcif.NewIntArray(testutil.IntRuns(100, 1, 2), bcif.TypeUint8))
	out, err := c.Compress(data)
	require.NoError(t, err)
	assert.IsType(t, &bcif.Data{}, out)

	_, err = c.Compress(42)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnsupported))
}

func TestCompressPackageLevel(t *testing.T) {
	data := bcif.NewData(bcif.NewIntArray(testutil.IntRuns(100, 5), bcif.TypeUint8))
	out, err := Compress(data)
	require.NoError(t, err)
	compressed, ok := out.(*bcif.Data)
	require.True(t, ok)
	assert.NotEmpty(t, compressed.Encodings())
}

func TestCompressCategoryOrderAndMask(t *testing.T) {
	c := newTestCompressor(t)

	mask := bcif.NewData(bcif.NewIntArray(testutil.IntRuns(50, 0, 2), bcif.TypeUint8))
	cat := bcif.NewCategory()
	cat.Set("id", bcif.NewColumn(bcif.NewData(bcif.NewIntArray(testutil.IntRamp(1, 100), bcif.TypeInt32)), nil))
	cat.Set("occupancy", bcif.NewColumn(bcif.NewData(bcif.NewFloatArray(make([]float64, 100), bcif.TypeFloat64)), mask))

	out, err := c.CompressCategory(cat)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "occupancy"}, out.Names())

	col, ok := out.Get("occupancy")
	require.True(t, ok)
	require.NotNil(t, col.Mask)
	assert.NotEmpty(t, col.Mask.Encodings())

	col, ok = out.Get("id")
	require.True(t, ok)
	assert.Nil(t, col.Mask)
}

func TestCompressFileHierarchy(t *testing.T) {
	c := newTestCompressor(t)

	cat := bcif.NewCategory()
	cat.Set("serial", bcif.NewColumn(bcif.NewData(bcif.NewIntArray(testutil.IntRamp(1, 200), bcif.TypeInt32)), nil))
	block := bcif.NewBlock()
	block.Set("atom_site", cat)
	file := bcif.NewFile()
	file.Set("data_1", block)

	out, err := c.CompressFile(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"data_1"}, out.Names())

	outBlock, _ := out.Get("data_1")
	assert.Equal(t, []string{"atom_site"}, outBlock.Names())
	outCat, _ := outBlock.Get("atom_site")
	col, ok := outCat.Get("serial")
	require.True(t, ok)
	assert.NotEmpty(t, col.Data.Encodings())
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultFloatTolerance, c.cfg.FloatTolerance)
	assert.NotNil(t, c.log)
}

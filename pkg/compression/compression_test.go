package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/bcifpack/pkg/errors"
)

func testPayload() []byte {
	var buf bytes.Buffer
	for i := 0; i < 200; i++ {
		buf.WriteString("atom_site.Cartn_x atom_site.Cartn_y atom_site.Cartn_z ")
	}
	return buf.Bytes()
}

func TestCodecRoundTrip(t *testing.T) {
	algorithms := []Algorithm{None, Gzip, Deflate, Snappy, S2, LZ4, Zstd}
	payload := testPayload()

	for _, alg := range algorithms {
		t.Run(string(alg), func(t *testing.T) {
			codec, err := New(alg, Default)
			require.NoError(t, err)
			assert.Equal(t, alg, codec.Algorithm())

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			if alg != None {
				assert.Less(t, len(compressed), len(payload))
			}

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, decompressed)
		})
	}
}

func TestCodecLevels(t *testing.T) {
	payload := testPayload()
	for _, level := range []Level{Fastest, Default, Best} {
		codec, err := New(Gzip, level)
		require.NoError(t, err)
		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		assert.Equal(t, payload, decompressed)
	}
}

func TestCompressedSize(t *testing.T) {
	payload := testPayload()
	codec, err := New(Gzip, Default)
	require.NoError(t, err)

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	size, err := codec.CompressedSize(payload)
	require.NoError(t, err)
	assert.Equal(t, len(compressed), size)
}

func TestCodecEmptyInput(t *testing.T) {
	for _, alg := range []Algorithm{None, Gzip, Snappy, Zstd} {
		codec, err := New(alg, Default)
		require.NoError(t, err)
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		assert.Empty(t, decompressed)
	}
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm("zstd")
	require.NoError(t, err)
	assert.Equal(t, Zstd, alg)

	_, err = ParseAlgorithm("brotli")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestNewUnknownAlgorithm(t *testing.T) {
	_, err := New(Algorithm("bogus"), Default)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestNewDefaultsLevel(t *testing.T) {
	codec, err := New(Gzip, 0)
	require.NoError(t, err)
	payload := testPayload()
	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, decompressed)
}

// Package compression provides byte-stream compression codecs for bcifpack.
//
// BinaryCIF containers are customarily served behind a transport codec
// (typically gzip), so the effective size of a column is the size of its
// serialized form after that codec. The analyze tooling uses this package to
// report post-transport sizes next to the encoder's own byte counts.
//
// Supported algorithms: Gzip, Deflate, Snappy, S2, LZ4 and Zstd.
package compression

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajitpratap0/bcifpack/pkg/errors"
)

// Algorithm represents a compression algorithm.
type Algorithm string

const (
	// None performs no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// Deflate represents raw deflate compression
	Deflate Algorithm = "deflate"
	// Snappy represents snappy block compression
	Snappy Algorithm = "snappy"
	// S2 represents s2 compression (snappy compatible)
	S2 Algorithm = "s2"
	// LZ4 represents lz4 frame compression
	LZ4 Algorithm = "lz4"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
)

// Level represents the speed/ratio trade-off of a codec.
type Level int

const (
	// Fastest prioritizes speed over compression ratio
	Fastest Level = 1
	// Default balances speed and compression
	Default Level = 5
	// Best prioritizes compression ratio over speed
	Best Level = 9
)

// ParseAlgorithm converts a string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case None, Gzip, Deflate, Snappy, S2, LZ4, Zstd:
		return Algorithm(s), nil
	default:
		return "", errors.Newf(errors.ErrorTypeConfig, "unknown compression algorithm %q", s)
	}
}

// Codec compresses and decompresses byte streams with a fixed algorithm and
// level. A Codec is safe for concurrent use.
type Codec struct {
	algorithm Algorithm
	level     Level
}

// New creates a codec for the given algorithm and level.
func New(algorithm Algorithm, level Level) (*Codec, error) {
	switch algorithm {
	case None, Gzip, Deflate, Snappy, S2, LZ4, Zstd:
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"unknown compression algorithm %q", algorithm)
	}
	if level == 0 {
		level = Default
	}
	return &Codec{algorithm: algorithm, level: level}, nil
}

// Algorithm returns the codec's algorithm.
func (c *Codec) Algorithm() Algorithm { return c.algorithm }

// Compress compresses data in one shot.
func (c *Codec) Compress(data []byte) ([]byte, error) {
	switch c.algorithm {
	case None:
		return data, nil
	case Snappy:
		return snappy.Encode(nil, data), nil
	case S2:
		return s2.Encode(nil, data), nil
	case Zstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(c.zstdLevel()))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "zstd writer")
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case Gzip, Deflate, LZ4:
		var buf bytes.Buffer
		w, err := c.newWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "compress write")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "compress close")
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"unknown compression algorithm %q", c.algorithm)
	}
}

// Decompress reverses Compress.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	switch c.algorithm {
	case None:
		return data, nil
	case Snappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "snappy decode")
		}
		return out, nil
	case S2:
		out, err := s2.Decode(nil, data)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "s2 decode")
		}
		return out, nil
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "zstd reader")
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "zstd decode")
		}
		return out, nil
	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip reader")
		}
		defer r.Close()
		return readAll(r)
	case Deflate:
		r := flate.NewReader(bytes.NewReader(data))
		defer r.Close()
		return readAll(r)
	case LZ4:
		return readAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"unknown compression algorithm %q", c.algorithm)
	}
}

// CompressedSize returns the size of data after compression.
func (c *Codec) CompressedSize(data []byte) (int, error) {
	out, err := c.Compress(data)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

func (c *Codec) newWriter(buf *bytes.Buffer) (io.WriteCloser, error) {
	switch c.algorithm {
	case Gzip:
		w, err := gzip.NewWriterLevel(buf, c.flateLevel())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "gzip writer")
		}
		return w, nil
	case Deflate:
		w, err := flate.NewWriter(buf, c.flateLevel())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "deflate writer")
		}
		return w, nil
	case LZ4:
		return lz4.NewWriter(buf), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"algorithm %q has no stream writer", c.algorithm)
	}
}

func (c *Codec) flateLevel() int {
	switch {
	case c.level <= Fastest:
		return flate.BestSpeed
	case c.level >= Best:
		return flate.BestCompression
	default:
		return flate.DefaultCompression
	}
}

func (c *Codec) zstdLevel() zstd.EncoderLevel {
	switch {
	case c.level <= Fastest:
		return zstd.SpeedFastest
	case c.level >= Best:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

func readAll(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "decompress read")
	}
	return out, nil
}

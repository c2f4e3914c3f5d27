// Package bcif implements the data model and encoding primitives of a
// BinaryCIF-style columnar container.
//
// # Overview
//
// The package provides:
//   - Typed immutable data arrays (integer, floating point, string) carrying
//     a declared BinaryCIF storage type
//   - The container hierarchy File -> Block -> Category -> Column -> Data,
//     all as insertion-order preserving mappings
//   - The reversible encodings of the BinaryCIF format: ByteArray,
//     FixedPoint, IntervalQuantization, RunLength, Delta, IntegerPacking and
//     StringArray
//   - MessagePack serialization of a data array together with its encoding
//     pipeline, including exact byte-size measurement
//
// # Encodings
//
// An encoding pipeline is an ordered list of transforms applied to an array
// before it is written. Every pipeline ends in a terminal encoding that
// produces raw bytes (ByteArray for numeric data, StringArray for strings);
// all preceding stages map arrays to arrays. Decoding applies the inverse
// transforms in reverse order and reproduces the original array exactly,
// except for FixedPoint whose error is bounded by the quantization factor.
//
// # Basic Usage
//
//	arr := bcif.NewIntArray([]int64{1, 1, 2, 2}, bcif.TypeUint8)
//	data := bcif.NewData(arr, bcif.NewRunLengthEncoding(), bcif.NewByteArrayEncoding())
//
//	// Exact size on the wire
//	size, err := data.EncodedSize()
//
//	// Full serialization
//	payload, err := data.Serialize()
//
// Selecting the smallest pipeline for an array or a whole container is the
// job of the compress package.
package bcif

// Package compress selects the smallest encoding pipeline for BinaryCIF-style
// columnar data.
//
// # Overview
//
// For every data array the selector enumerates a bounded set of candidate
// encoding pipelines, measures the exact serialized size of each candidate,
// and keeps the smallest. Containers are walked recursively; each level is
// rebuilt with compressed children while the input is left untouched.
//
// Integer arrays are first narrowed to their tightest storage type, then the
// Cartesian product of {Delta} x {RunLength} x {IntegerPacking none/1/2} is
// tried, always against the uncompressed ByteArray floor, so the result is
// never larger than the uncompressed serialization. Floating point arrays are
// quantized to the smallest decimal precision satisfying the configured
// relative tolerance before entering the integer search, and fall back to a
// raw byte dump when quantized storage is not actually smaller. String arrays
// are deduplicated through the StringArray encoding, whose derived index and
// offsets arrays are searched independently.
//
// # Usage
//
//	compressed, err := compress.Compress(file)
//
//	// or with explicit configuration
//	c := compress.New(compress.Config{FloatTolerance: 1e-4, Workers: 8})
//	smaller, err := c.CompressFile(file)
//
// Compression never changes logical values beyond the float tolerance and
// preserves container structure and key order. Arrays for which no strictly
// smaller pipeline exists are reused by reference in the output.
package compress

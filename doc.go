// Package bcifpack provides automatic compression-scheme selection for
// BinaryCIF-style columnar containers.
//
// A BinaryCIF container stores typed data columns, each with an optional
// null mask, organized as File -> Block -> Category -> Column. Every column
// may be stored behind an ordered pipeline of reversible encodings; picking
// the right pipeline per column routinely shrinks real-world files by an
// order of magnitude without losing information.
//
// bcifpack chooses that pipeline automatically. For every array it
// enumerates a bounded set of candidate pipelines, serializes each candidate
// into the MessagePack wire format to measure its exact size, and keeps the
// smallest, never doing worse than the uncompressed byte dump. Floating
// point columns are quantized to the coarsest decimal precision that stays
// within a caller-supplied relative tolerance before entering the search.
//
// # Packages
//
//   - pkg/bcif: the container data model, the reversible encodings and the
//     MessagePack serialization used for exact size measurement
//   - pkg/compress: the per-array search, the type dispatch and the
//     hierarchical walker, with an optional column-parallel mode
//   - pkg/compression: byte-stream codecs for post-transport size estimates
//   - pkg/config, pkg/logger, pkg/errors, pkg/pool, pkg/testutil: shared
//     infrastructure
//   - cmd/bcifpack: a CLI that analyzes tabular data and reports the
//     selected pipelines and sizes
//
// # Quick Start
//
//	arr := bcif.NewFloatArray(coords, bcif.TypeFloat32)
//	data := bcif.NewData(arr)
//
//	compressed, err := compress.Compress(data)
//	if err != nil {
//	    return err
//	}
//	payload, err := compressed.(*bcif.Data).Serialize()
package bcifpack

package compress

import (
	"github.com/ajitpratap0/bcifpack/pkg/bcif"
)

// packingOptions are the IntegerPacking widths tried by the search;
// 0 means no packing stage.
var packingOptions = [3]int{0, 1, 2}

// findBestIntegerCompression enumerates the candidate pipelines for an
// integer array and returns the one with the smallest serialized size,
// together with that size.
//
// The enumeration order is fixed: Delta in the outer loop, RunLength in the
// middle, IntegerPacking innermost. Ties keep the earlier candidate, so the
// selection is deterministic and reproducible. The plain ByteArray pipeline
// initializes the best size, guaranteeing the result is never worse than the
// uncompressed serialization.
func findBestIntegerCompression(arr *bcif.Array) ([]bcif.Encoding, int, error) {
	best := []bcif.Encoding{bcif.NewByteArrayEncoding()}
	bestSize, err := bcif.NewData(arr, best...).EncodedSize()
	if err != nil {
		return nil, 0, err
	}

	for _, useDelta := range [2]bool{false, true} {
		for _, useRunLength := range [2]bool{false, true} {
			for _, packBytes := range packingOptions {
				candidate := make([]bcif.Encoding, 0, 4)
				if useDelta {
					candidate = append(candidate, bcif.NewDeltaEncoding())
				}
				if useRunLength {
					candidate = append(candidate, bcif.NewRunLengthEncoding())
				}
				if packBytes > 0 {
					candidate = append(candidate, bcif.NewIntegerPackingEncoding(packBytes))
				}
				candidate = append(candidate, bcif.NewByteArrayEncoding())

				size, err := bcif.NewData(arr, candidate...).EncodedSize()
				if err != nil {
					// The candidate cannot represent this array, e.g. a
					// delta outside the int32 range. Skip it; the floor
					// candidate always remains valid.
					continue
				}
				if size < bestSize {
					best = candidate
					bestSize = size
				}
			}
		}
	}
	return best, bestSize, nil
}

package compress

import (
	"math"
)

// maxDecimalPlaces caps the decimal-place search relative to its starting
// point. Rounding a double beyond 17 significant decimals is exact, so the
// search always terminates within 17 steps of the values' order of magnitude
// even for tolerances at the edge of representability.
const maxDecimalPlaces = 17

// decimalPlaces returns the smallest number of decimal places d such that
// rounding every finite non-zero value to d decimals keeps the relative
// error below tol. The search starts at the negated order of magnitude of
// the values, so large numbers may yield a negative d (rounding to tens,
// hundreds, ...).
func decimalPlaces(values []float64, tol float64) int {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		// Only zero or non-finite values carry no decimal information.
		return 0
	}

	start := -orderMagnitude(finite)
	for d := start; d < start+maxDecimalPlaces; d++ {
		factor := math.Pow(10, float64(d))
		withinTolerance := true
		for _, v := range finite {
			rounded := math.Round(v*factor) / factor
			if math.Abs(rounded-v) >= tol*math.Abs(v) {
				withinTolerance = false
				break
			}
		}
		if withinTolerance {
			return d
		}
	}
	return start + maxDecimalPlaces
}

// orderMagnitude returns the maximum exponent a value would have in
// scientific notation with one digit before the decimal point.
func orderMagnitude(values []float64) int {
	max := math.Inf(-1)
	for _, v := range values {
		if e := math.Floor(math.Log10(math.Abs(v))); e > max {
			max = e
		}
	}
	return int(max)
}

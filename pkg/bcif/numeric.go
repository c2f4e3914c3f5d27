package bcif

import (
	"math"

	"github.com/ajitpratap0/bcifpack/pkg/errors"
)

// FixedPointEncoding converts a floating point array to integers by scaling
// with a power of ten and rounding. It is the only lossy encoding; the error
// introduced is bounded by the factor. It must be the first stage of a
// pipeline whenever it is used.
type FixedPointEncoding struct {
	// Factor is the scaling factor, a positive power of ten.
	Factor float64
	// SrcType is the storage type of the source array.
	SrcType DataType
}

// NewFixedPointEncoding creates a FixedPoint encoding with the given factor.
func NewFixedPointEncoding(factor float64) *FixedPointEncoding {
	return &FixedPointEncoding{Factor: factor}
}

// Kind returns the wire name of the encoding.
func (e *FixedPointEncoding) Kind() string { return KindFixedPoint }

func (e *FixedPointEncoding) params() (interface{}, error) {
	if e.Factor <= 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"invalid fixed point factor %g", e.Factor)
	}
	return fixedPointParams{Kind: KindFixedPoint, Factor: e.Factor, SrcType: e.SrcType}, nil
}

// Encode scales and rounds the values into an int32 array. Non-finite values
// carry no decimal information and encode as zero; their presence is
// expected to be marked by the column's mask.
func (e *FixedPointEncoding) Encode(a *Array) (*Array, error) {
	if a.Kind() != KindFloat {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"fixed point encoding requires a float array, got %s", a.Kind())
	}
	if e.Factor <= 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"invalid fixed point factor %g", e.Factor)
	}
	e.SrcType = a.Type()

	lo, hi := TypeInt32.Bounds()
	src := a.Floats()
	values := make([]int64, len(src))
	for i, v := range src {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		scaled := math.Round(v * e.Factor)
		if scaled < float64(lo) || scaled > float64(hi) {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"scaled value %g out of int32 range", scaled)
		}
		values[i] = int64(scaled)
	}
	return NewIntArray(values, TypeInt32), nil
}

// Decode divides the integers by the factor, restoring the source precision.
func (e *FixedPointEncoding) Decode(a *Array) (*Array, error) {
	if a.Kind() != KindInt {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"fixed point decoding requires an integer array, got %s", a.Kind())
	}
	srcType := e.SrcType
	if srcType == 0 {
		srcType = TypeFloat64
	}
	values := make([]float64, a.Len())
	for i, q := range a.Ints() {
		v := float64(q) / e.Factor
		if srcType == TypeFloat32 {
			v = float64(float32(v))
		}
		values[i] = v
	}
	return NewFloatArray(values, srcType), nil
}

// IntervalQuantizationEncoding maps floating point values onto a fixed number
// of evenly spaced steps within an interval. It is part of the BinaryCIF
// encoding set for completeness; the automatic selector never produces it.
type IntervalQuantizationEncoding struct {
	// Min and Max bound the quantization interval.
	Min float64
	Max float64
	// NumSteps is the number of representable values, at least 2.
	NumSteps int
	// SrcType is the storage type of the source array.
	SrcType DataType
}

// NewIntervalQuantizationEncoding creates an IntervalQuantization encoding.
func NewIntervalQuantizationEncoding(min, max float64, numSteps int) *IntervalQuantizationEncoding {
	return &IntervalQuantizationEncoding{Min: min, Max: max, NumSteps: numSteps}
}

// Kind returns the wire name of the encoding.
func (e *IntervalQuantizationEncoding) Kind() string { return KindIntervalQuantization }

func (e *IntervalQuantizationEncoding) params() (interface{}, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	return intervalQuantizationParams{
		Kind:     KindIntervalQuantization,
		Min:      e.Min,
		Max:      e.Max,
		NumSteps: e.NumSteps,
		SrcType:  e.SrcType,
	}, nil
}

func (e *IntervalQuantizationEncoding) validate() error {
	if e.NumSteps < 2 {
		return errors.Newf(errors.ErrorTypeValidation,
			"interval quantization needs at least 2 steps, got %d", e.NumSteps)
	}
	if !(e.Max > e.Min) {
		return errors.Newf(errors.ErrorTypeValidation,
			"invalid quantization interval [%g, %g]", e.Min, e.Max)
	}
	return nil
}

func (e *IntervalQuantizationEncoding) step() float64 {
	return (e.Max - e.Min) / float64(e.NumSteps-1)
}

// Encode maps each value to the index of its nearest step. Values outside
// the interval are clamped; non-finite values encode as zero.
func (e *IntervalQuantizationEncoding) Encode(a *Array) (*Array, error) {
	if a.Kind() != KindFloat {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"interval quantization requires a float array, got %s", a.Kind())
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	e.SrcType = a.Type()

	delta := e.step()
	values := make([]int64, a.Len())
	for i, v := range a.Floats() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < e.Min {
			v = e.Min
		} else if v > e.Max {
			v = e.Max
		}
		values[i] = int64(math.Round((v - e.Min) / delta))
	}
	return NewIntArray(values, TypeInt32), nil
}

// Decode maps step indices back to interval values.
func (e *IntervalQuantizationEncoding) Decode(a *Array) (*Array, error) {
	if a.Kind() != KindInt {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"interval dequantization requires an integer array, got %s", a.Kind())
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	srcType := e.SrcType
	if srcType == 0 {
		srcType = TypeFloat64
	}
	delta := e.step()
	values := make([]float64, a.Len())
	for i, q := range a.Ints() {
		v := e.Min + float64(q)*delta
		if srcType == TypeFloat32 {
			v = float64(float32(v))
		}
		values[i] = v
	}
	return NewFloatArray(values, srcType), nil
}

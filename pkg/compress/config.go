package compress

import (
	"go.uber.org/zap"
)

// DefaultFloatTolerance is the relative error accepted when quantizing
// floating point arrays.
const DefaultFloatTolerance = 1e-6

// Config controls the compression selector.
type Config struct {
	// FloatTolerance is the relative error accepted for floating point
	// arrays. Zero or negative selects DefaultFloatTolerance.
	FloatTolerance float64

	// Workers sets the number of goroutines compressing columns when a
	// whole file or block is walked. 1 runs sequentially, 0 uses NumCPU.
	// The result does not depend on this setting.
	Workers int

	// Logger overrides the package logger.
	Logger *zap.Logger
}

// DefaultConfig returns the default selector configuration.
func DefaultConfig() Config {
	return Config{
		FloatTolerance: DefaultFloatTolerance,
		Workers:        1,
	}
}

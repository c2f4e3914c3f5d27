// Package testutil provides testing utilities for bcifpack
package testutil

import (
	"math/rand"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// Rand returns a deterministic random source for reproducible test data.
func Rand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// IntRamp returns [start, start+1, ..., start+n-1].
func IntRamp(start int64, n int) []int64 {
	values := make([]int64, n)
	for i := range values {
		values[i] = start + int64(i)
	}
	return values
}

// IntRuns returns n copies of each given value, in order.
func IntRuns(n int, values ...int64) []int64 {
	out := make([]int64, 0, n*len(values))
	for _, v := range values {
		for i := 0; i < n; i++ {
			out = append(out, v)
		}
	}
	return out
}

package compress

import (
	"testing"

	"go.uber.org/zap"

	"github.com/ajitpratap0/bcifpack/pkg/bcif"
	"github.com/ajitpratap0/bcifpack/pkg/testutil"
)

func benchCompressor() *Compressor {
	cfg := DefaultConfig()
	cfg.Logger = zap.NewNop()
	return New(cfg)
}

func BenchmarkCompressDataIntRamp(b *testing.B) {
	c := benchCompressor()
	data := bcif.NewData(bcif.NewIntArray(testutil.IntRamp(1, 10000), bcif.TypeInt32))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.CompressData(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompressDataIntRandom(b *testing.B) {
	c := benchCompressor()
	rng := testutil.Rand(1)
	values := make([]int64, 10000)
	for i := range values {
		values[i] = rng.Int63n(1 << 20)
	}
	data := bcif.NewData(bcif.NewIntArray(values, bcif.TypeInt32))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.CompressData(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompressDataFloat(b *testing.B) {
	c := benchCompressor()
	values := make([]float64, 10000)
	for i := range values {
		values[i] = float64(i) * 0.125
	}
	data := bcif.NewData(bcif.NewFloatArray(values, bcif.TypeFloat64))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.CompressData(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompressDataString(b *testing.B) {
	c := benchCompressor()
	symbols := []string{"C", "N", "O", "S", "H", "P"}
	rng := testutil.Rand(2)
	values := make([]string, 10000)
	for i := range values {
		values[i] = symbols[rng.Int63n(int64(len(symbols)))]
	}
	data := bcif.NewData(bcif.NewStringArray(values))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.CompressData(data); err != nil {
			b.Fatal(err)
		}
	}
}

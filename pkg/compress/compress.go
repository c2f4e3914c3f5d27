package compress

import (
	"math"

	"go.uber.org/zap"

	"github.com/ajitpratap0/bcifpack/pkg/bcif"
	"github.com/ajitpratap0/bcifpack/pkg/errors"
	"github.com/ajitpratap0/bcifpack/pkg/logger"
)

// Compressor selects encoding pipelines according to its configuration.
// It is stateless apart from the configuration and safe for concurrent use.
type Compressor struct {
	cfg Config
	log *zap.Logger
}

// New creates a compressor. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Compressor {
	if cfg.FloatTolerance <= 0 {
		cfg.FloatTolerance = DefaultFloatTolerance
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Named("compress")
	}
	return &Compressor{cfg: cfg, log: log}
}

// Compress compresses any level of the container hierarchy and returns a
// value of the same type. Supported inputs are *bcif.File, *bcif.Block,
// *bcif.Category, *bcif.Column and *bcif.Data.
func Compress(v interface{}) (interface{}, error) {
	return New(DefaultConfig()).Compress(v)
}

// Compress dispatches on the structural kind of the input; each level
// delegates to the next-lower level's compressor.
func (c *Compressor) Compress(v interface{}) (interface{}, error) {
	switch node := v.(type) {
	case *bcif.File:
		return c.CompressFile(node)
	case *bcif.Block:
		return c.CompressBlock(node)
	case *bcif.Category:
		return c.CompressCategory(node)
	case *bcif.Column:
		return c.CompressColumn(node)
	case *bcif.Data:
		return c.CompressData(node)
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupported,
			"cannot compress value of type %T", v)
	}
}

// CompressFile rebuilds the file with every block compressed, preserving
// block order. Columns are compressed in parallel when Workers permits.
func (c *Compressor) CompressFile(f *bcif.File) (*bcif.File, error) {
	if workers := c.workerCount(); workers > 1 {
		return c.compressFileParallel(f, workers)
	}
	out := bcif.NewFile()
	for _, name := range f.Names() {
		block, _ := f.Get(name)
		compressed, err := c.CompressBlock(block)
		if err != nil {
			return nil, err
		}
		out.Set(name, compressed)
	}
	return out, nil
}

// CompressBlock rebuilds the block with every category compressed,
// preserving category order.
func (c *Compressor) CompressBlock(b *bcif.Block) (*bcif.Block, error) {
	out := bcif.NewBlock()
	for _, name := range b.Names() {
		cat, _ := b.Get(name)
		compressed, err := c.CompressCategory(cat)
		if err != nil {
			return nil, err
		}
		out.Set(name, compressed)
	}
	return out, nil
}

// CompressCategory rebuilds the category with every column compressed,
// preserving column order.
func (c *Compressor) CompressCategory(cat *bcif.Category) (*bcif.Category, error) {
	out := bcif.NewCategory()
	for _, name := range cat.Names() {
		col, _ := cat.Get(name)
		compressed, err := c.CompressColumn(col)
		if err != nil {
			return nil, err
		}
		out.Set(name, compressed)
	}
	return out, nil
}

// CompressColumn compresses a column's data and, if present, its mask.
// Data and mask are independent arrays with independent searches.
func (c *Compressor) CompressColumn(col *bcif.Column) (*bcif.Column, error) {
	data, err := c.CompressData(col.Data)
	if err != nil {
		return nil, err
	}
	var mask *bcif.Data
	if col.Mask != nil {
		mask, err = c.CompressData(col.Mask)
		if err != nil {
			return nil, err
		}
	}
	return bcif.NewColumn(data, mask), nil
}

// CompressData selects the smallest encoding pipeline for a single data
// array. The input is never modified; when no pipeline beats the
// uncompressed serialization the original array is reused by reference.
func (c *Compressor) CompressData(d *bcif.Data) (*bcif.Data, error) {
	arr := d.Array()
	if arr == nil {
		return nil, errors.New(errors.ErrorTypeUnsupported, "data has no array")
	}
	if arr.Len() <= 1 {
		// Any encoding header outweighs its benefit on a single value.
		return bcif.NewData(arr), nil
	}

	switch arr.Kind() {
	case bcif.KindString:
		return c.compressString(arr)
	case bcif.KindFloat:
		return c.compressFloat(arr)
	case bcif.KindInt:
		return c.compressInt(arr)
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupported,
			"unsupported element kind %d", arr.Kind())
	}
}

func (c *Compressor) compressString(arr *bcif.Array) (*bcif.Data, error) {
	enc := bcif.NewStringArrayEncoding()
	indices, offsets, err := enc.Build(arr)
	if err != nil {
		return nil, err
	}
	enc.DataEncoding, _, err = findBestIntegerCompression(indices)
	if err != nil {
		return nil, err
	}
	enc.OffsetEncoding, _, err = findBestIntegerCompression(offsets)
	if err != nil {
		return nil, err
	}
	return bcif.NewData(arr, enc), nil
}

func (c *Compressor) compressFloat(arr *bcif.Array) (*bcif.Data, error) {
	places := decimalPlaces(arr.Floats(), c.cfg.FloatTolerance)
	fixedPoint := bcif.NewFixedPointEncoding(math.Pow(10, float64(places)))

	intArr, err := fixedPoint.Encode(arr)
	if err == nil {
		best, compressedSize, searchErr := findBestIntegerCompression(intArr)
		if searchErr != nil {
			return nil, searchErr
		}
		rawSize, rawErr := bcif.NewData(arr).EncodedSize()
		if rawErr != nil {
			return nil, rawErr
		}
		if compressedSize < rawSize {
			pipeline := append([]bcif.Encoding{fixedPoint}, best...)
			return bcif.NewData(arr, pipeline...), nil
		}
	}
	// Quantized storage is not smaller (or the scaled values do not fit);
	// keep the float array as a raw byte dump.
	return bcif.NewData(arr, bcif.NewByteArrayEncoding()), nil
}

func (c *Compressor) compressInt(arr *bcif.Array) (*bcif.Data, error) {
	narrowed, err := bcif.Narrow(arr)
	if err != nil {
		return nil, err
	}
	encodings, _, err := findBestIntegerCompression(narrowed)
	if err != nil {
		return nil, err
	}
	return bcif.NewData(narrowed, encodings...), nil
}

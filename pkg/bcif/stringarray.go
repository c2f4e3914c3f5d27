package bcif

import (
	"strings"

	"github.com/ajitpratap0/bcifpack/pkg/errors"
)

// StringArrayEncoding deduplicates the unique strings of an array, storing a
// concatenated string buffer, an offsets array delimiting the unique strings
// within it, and an index per element referencing the unique-string table.
// The index and offsets arrays are integer arrays and carry their own
// encoding pipelines.
type StringArrayEncoding struct {
	// DataEncoding is the pipeline applied to the index array.
	DataEncoding []Encoding
	// OffsetEncoding is the pipeline applied to the offsets array.
	OffsetEncoding []Encoding

	strings    []string // unique table in first-occurrence order
	stringData string   // concatenated unique table
	indices    *Array   // narrowed index array
	offsets    *Array   // narrowed cumulative offsets
}

// NewStringArrayEncoding creates a StringArray encoding with empty
// sub-pipelines. Build derives the index and offsets arrays so the caller can
// choose the sub-pipelines before serialization.
func NewStringArrayEncoding() *StringArrayEncoding { return &StringArrayEncoding{} }

// Kind returns the wire name of the encoding.
func (e *StringArrayEncoding) Kind() string { return KindStringArray }

// UniqueStrings returns the unique-string table in first-occurrence order.
// It is empty until Build or EncodeBytes has run.
func (e *StringArrayEncoding) UniqueStrings() []string { return e.strings }

// Build computes the unique-string table and the derived index and offsets
// arrays, both narrowed to their tightest integer storage type. The returned
// arrays are retained by the encoding, so sub-pipelines selected for them
// apply to exactly these arrays during serialization.
func (e *StringArrayEncoding) Build(a *Array) (indices, offsets *Array, err error) {
	if a.Kind() != KindString {
		return nil, nil, errors.Newf(errors.ErrorTypeValidation,
			"string array encoding requires a string array, got %s", a.Kind())
	}

	src := a.Strings()
	table := make([]string, 0, 16)
	position := make(map[string]int64, 16)
	index := make([]int64, len(src))
	for i, s := range src {
		pos, ok := position[s]
		if !ok {
			pos = int64(len(table))
			position[s] = pos
			table = append(table, s)
		}
		index[i] = pos
	}

	offset := make([]int64, len(table)+1)
	var builder strings.Builder
	for i, s := range table {
		builder.WriteString(s)
		offset[i+1] = offset[i] + int64(len(s))
	}

	e.strings = table
	e.stringData = builder.String()

	e.indices, err = Narrow(NewIntArray(index, TypeInt32))
	if err != nil {
		return nil, nil, err
	}
	e.offsets, err = Narrow(NewIntArray(offset, TypeInt32))
	if err != nil {
		return nil, nil, err
	}
	return e.indices, e.offsets, nil
}

// ensureDefaults materializes the default ByteArray sub-pipelines so the
// instances recording wire parameters survive between encoding and parameter
// serialization.
func (e *StringArrayEncoding) ensureDefaults() {
	if len(e.DataEncoding) == 0 {
		e.DataEncoding = []Encoding{NewByteArrayEncoding()}
	}
	if len(e.OffsetEncoding) == 0 {
		e.OffsetEncoding = []Encoding{NewByteArrayEncoding()}
	}
}

func (e *StringArrayEncoding) params() (interface{}, error) {
	if e.offsets == nil {
		return nil, errors.New(errors.ErrorTypeInternal,
			"string array encoding serialized before Build")
	}
	e.ensureDefaults()
	offsetBytes, err := encodePipeline(e.offsets, e.OffsetEncoding)
	if err != nil {
		return nil, err
	}
	dataEncoding, err := serializeEncodings(e.DataEncoding)
	if err != nil {
		return nil, err
	}
	offsetEncoding, err := serializeEncodings(e.OffsetEncoding)
	if err != nil {
		return nil, err
	}
	return stringArrayParams{
		Kind:           KindStringArray,
		DataEncoding:   dataEncoding,
		StringData:     e.stringData,
		OffsetEncoding: offsetEncoding,
		Offsets:        offsetBytes,
	}, nil
}

// EncodeBytes serializes the index array through the data sub-pipeline.
// The unique table and offsets travel in the encoding parameters.
func (e *StringArrayEncoding) EncodeBytes(a *Array) ([]byte, error) {
	if e.indices == nil {
		if _, _, err := e.Build(a); err != nil {
			return nil, err
		}
	}
	e.ensureDefaults()
	return encodePipeline(e.indices, e.DataEncoding)
}

// DecodeBytes reverses EncodeBytes, rebuilding the string array from the
// decoded index array, the offsets array and the concatenated string buffer.
func (e *StringArrayEncoding) DecodeBytes(b []byte) (*Array, error) {
	indexArr, err := decodePipeline(b, e.DataEncoding)
	if err != nil {
		return nil, err
	}

	offsetArr := e.offsets
	if offsetArr == nil {
		return nil, errors.New(errors.ErrorTypeData,
			"string array encoding has no offsets array")
	}
	offsets := offsetArr.Ints()
	if len(offsets) == 0 {
		return nil, errors.New(errors.ErrorTypeData, "empty string array offsets")
	}

	table := make([]string, len(offsets)-1)
	for i := range table {
		lo, hi := offsets[i], offsets[i+1]
		if lo < 0 || hi < lo || hi > int64(len(e.stringData)) {
			return nil, errors.Newf(errors.ErrorTypeData,
				"invalid string offsets [%d, %d]", lo, hi)
		}
		table[i] = e.stringData[lo:hi]
	}

	values := make([]string, indexArr.Len())
	for i, idx := range indexArr.Ints() {
		switch {
		case idx == -1:
			values[i] = ""
		case idx < 0 || idx >= int64(len(table)):
			return nil, errors.Newf(errors.ErrorTypeData,
				"string index %d out of range", idx)
		default:
			values[i] = table[idx]
		}
	}
	return NewStringArray(values), nil
}

package bcif

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ajitpratap0/bcifpack/pkg/errors"
	"github.com/ajitpratap0/bcifpack/pkg/pool"
)

// Wire parameter records. Field order follows the reference writers; the
// msgpack keys are part of the BinaryCIF format.
type byteArrayParams struct {
	Kind string   `msgpack:"kind"`
	Type DataType `msgpack:"type"`
}

type fixedPointParams struct {
	Kind    string   `msgpack:"kind"`
	Factor  float64  `msgpack:"factor"`
	SrcType DataType `msgpack:"srcType"`
}

type intervalQuantizationParams struct {
	Kind     string   `msgpack:"kind"`
	Min      float64  `msgpack:"min"`
	Max      float64  `msgpack:"max"`
	NumSteps int      `msgpack:"numSteps"`
	SrcType  DataType `msgpack:"srcType"`
}

type runLengthParams struct {
	Kind    string   `msgpack:"kind"`
	SrcType DataType `msgpack:"srcType"`
	SrcSize int      `msgpack:"srcSize"`
}

type deltaParams struct {
	Kind    string   `msgpack:"kind"`
	Origin  int64    `msgpack:"origin"`
	SrcType DataType `msgpack:"srcType"`
}

type integerPackingParams struct {
	Kind       string `msgpack:"kind"`
	ByteCount  int    `msgpack:"byteCount"`
	SrcSize    int    `msgpack:"srcSize"`
	IsUnsigned bool   `msgpack:"isUnsigned"`
}

type stringArrayParams struct {
	Kind           string        `msgpack:"kind"`
	DataEncoding   []interface{} `msgpack:"dataEncoding"`
	StringData     string        `msgpack:"stringData"`
	OffsetEncoding []interface{} `msgpack:"offsetEncoding"`
	Offsets        []byte        `msgpack:"offsets"`
}

// serializedData is the wire shape of a data array: the encoded payload plus
// the parameter records needed to invert the pipeline.
type serializedData struct {
	Encoding []interface{} `msgpack:"encoding"`
	Data     []byte        `msgpack:"data"`
}

// serializeEncodings converts a pipeline into its wire parameter records.
func serializeEncodings(encs []Encoding) ([]interface{}, error) {
	out := make([]interface{}, len(encs))
	for i, e := range encs {
		p, err := e.params()
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// EncodeArray applies an encoding pipeline to an array. All stages but the
// last must map arrays to arrays and the last must be terminal.
func EncodeArray(a *Array, encs []Encoding) ([]byte, error) {
	return encodePipeline(a, encs)
}

// DecodeArray inverts an encoding pipeline, reproducing the array that was
// passed to EncodeArray.
func DecodeArray(b []byte, encs []Encoding) (*Array, error) {
	return decodePipeline(b, encs)
}

func encodePipeline(a *Array, encs []Encoding) ([]byte, error) {
	if len(encs) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "empty encoding pipeline")
	}
	current := a
	for _, e := range encs[:len(encs)-1] {
		stage, ok := e.(ArrayEncoding)
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"terminal encoding %s before end of pipeline", e.Kind())
		}
		next, err := stage.Encode(current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	term, ok := encs[len(encs)-1].(TerminalEncoding)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"pipeline does not end in a terminal encoding (got %s)", encs[len(encs)-1].Kind())
	}
	return term.EncodeBytes(current)
}

func decodePipeline(b []byte, encs []Encoding) (*Array, error) {
	if len(encs) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "empty encoding pipeline")
	}
	term, ok := encs[len(encs)-1].(TerminalEncoding)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"pipeline does not end in a terminal encoding (got %s)", encs[len(encs)-1].Kind())
	}
	current, err := term.DecodeBytes(b)
	if err != nil {
		return nil, err
	}
	for i := len(encs) - 2; i >= 0; i-- {
		stage, ok := encs[i].(ArrayEncoding)
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeValidation,
				"terminal encoding %s before end of pipeline", encs[i].Kind())
		}
		current, err = stage.Decode(current)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// serializable encodes the payload first so the encodings record their
// derived parameters, then captures the parameter records. An empty pipeline
// defaults to the terminal encoding matching the array kind: StringArray for
// string arrays, ByteArray otherwise.
func (d *Data) serializable() (*serializedData, error) {
	encs := d.encodings
	if len(encs) == 0 {
		if d.array != nil && d.array.Kind() == KindString {
			encs = []Encoding{NewStringArrayEncoding()}
		} else {
			encs = []Encoding{NewByteArrayEncoding()}
		}
	}
	payload, err := encodePipeline(d.array, encs)
	if err != nil {
		return nil, err
	}
	params, err := serializeEncodings(encs)
	if err != nil {
		return nil, err
	}
	return &serializedData{Encoding: params, Data: payload}, nil
}

// Serialize returns the MessagePack representation of the data array with
// its encoding pipeline, exactly as it appears inside a container file.
func (d *Data) Serialize() ([]byte, error) {
	s, err := d.serializable()
	if err != nil {
		return nil, err
	}
	payload, err := msgpack.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "msgpack serialization failed")
	}
	return payload, nil
}

// EncodedSize returns the exact serialized byte size of the data array.
// This is the objective function of the compression search; it performs a
// real serialization into a pooled scratch buffer rather than an estimate,
// because per-format framing overhead decides close calls.
func (d *Data) EncodedSize() (int, error) {
	s, err := d.serializable()
	if err != nil {
		return 0, err
	}
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := msgpack.NewEncoder(buf).Encode(s); err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeInternal, "msgpack serialization failed")
	}
	return buf.Len(), nil
}

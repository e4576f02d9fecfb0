package gomap

import (
	"bytes"
	"io"

	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/parse"
)

// Unmarshal parses XML text and binds it to v, a pointer to a record.
//
// Whitespace-only text is dropped by the parser, so a scalar holding only
// spaces reads back untouched and an optional scalar reads back nil.
// Adjacent CDATA sections are joined into one value.
func Unmarshal(d []byte, v any, opts ...UnmapOption) error {
	return defaultMapper.Unmarshal(d, v, opts...)
}

// Marshal encodes the record v as XML text. Output is pretty printed unless
// encode.EncodeWire(true) is passed through EncodeOptions.
func Marshal(v any, opts ...MapOption) ([]byte, error) {
	return defaultMapper.Marshal(v, opts...)
}

// MarshalTo encodes v to w. Writer failures are reported as a *WriteError.
func MarshalTo(w io.Writer, v any, opts ...MapOption) error {
	return defaultMapper.MarshalTo(w, v, opts...)
}

func (m *Mapper) Unmarshal(d []byte, v any, opts ...UnmapOption) error {
	node, err := parse.Parse(d, ToParseOptions(opts...)...)
	if err != nil {
		return err
	}
	return m.FromIR(node, v, opts...)
}

func (m *Mapper) Marshal(v any, opts ...MapOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := m.MarshalTo(buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Mapper) MarshalTo(w io.Writer, v any, opts ...MapOption) error {
	node, err := m.ToIR(v, opts...)
	if err != nil {
		return err
	}
	if err := encode.Encode(node, w, ToEncodeOptions(opts...)...); err != nil {
		return &WriteError{Message: "encoding " + node.Name(), Err: err}
	}
	return nil
}

package xmlmap

import (
	"bytes"
	"slices"

	"github.com/signadot/xmlmap/debug"
	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/gomap"
	"github.com/signadot/xmlmap/parse"
)

// Codec decodes and encodes records, reporting success as a bool and
// keeping the diagnostic of its most recent failure of each kind.
//
// A Codec is not safe for concurrent use.
type Codec struct {
	Mapper    *gomap.Mapper
	MapOpts   []gomap.MapOption
	UnmapOpts []gomap.UnmapOption

	decodeErr error
	encodeErr error
}

type Option func(*Codec)

func WithMapper(m *gomap.Mapper) Option {
	return func(c *Codec) { c.Mapper = m }
}
func WithMapOptions(opts ...gomap.MapOption) Option {
	return func(c *Codec) { c.MapOpts = append(c.MapOpts, opts...) }
}
func WithUnmapOptions(opts ...gomap.UnmapOption) Option {
	return func(c *Codec) { c.UnmapOpts = append(c.UnmapOpts, opts...) }
}

func New(opts ...Option) *Codec {
	c := DefaultCodec()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultCodec returns a Codec on gomap's default Mapper.
func DefaultCodec() *Codec {
	return &Codec{Mapper: gomap.DefaultMapper()}
}

// Decode binds data to v, a pointer to a record. On failure it returns
// false and LastDecodeError describes why; fields bound before the failure
// keep their values.
func (c *Codec) Decode(v any, data []byte, mode parse.Mode) bool {
	c.decodeErr = nil
	opts := append(slices.Clone(c.UnmapOpts), gomap.ParseOptions(parse.ParseMode(mode)))
	if err := c.Mapper.Unmarshal(data, v, opts...); err != nil {
		if debug.Decode() {
			debug.Log().Debug("decode failed", "mode", mode, "error", err)
		}
		c.decodeErr = err
		return false
	}
	return true
}

// Encode replaces *out with the XML text of v, indented if pretty is set.
//
// If *out already holds content that is not well-formed XML, Encode fails
// and leaves *out unchanged.
func (c *Codec) Encode(v any, out *[]byte, pretty bool) bool {
	c.encodeErr = nil
	if out == nil {
		c.encodeErr = &gomap.WriteError{Message: "nil output buffer"}
		return false
	}
	if len(bytes.TrimSpace(*out)) != 0 {
		if _, err := parse.Parse(*out); err != nil {
			c.encodeErr = &gomap.WriteError{Message: "output buffer holds malformed content", Err: err}
			return false
		}
	}
	buf := bytes.NewBuffer(nil)
	opts := append(slices.Clone(c.MapOpts), gomap.EncodeOptions(encode.EncodeWire(!pretty)))
	if err := c.Mapper.MarshalTo(buf, v, opts...); err != nil {
		if debug.Encode() {
			debug.Log().Debug("encode failed", "error", err)
		}
		c.encodeErr = err
		return false
	}
	*out = buf.Bytes()
	return true
}

// LastDecodeError is the message of the last failed Decode, or empty if the
// last Decode succeeded.
func (c *Codec) LastDecodeError() string { return errString(c.decodeErr) }

// LastEncodeError is the message of the last failed Encode, or empty if the
// last Encode succeeded.
func (c *Codec) LastEncodeError() string { return errString(c.encodeErr) }

func (c *Codec) DecodeErr() error { return c.decodeErr }
func (c *Codec) EncodeErr() error { return c.encodeErr }

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

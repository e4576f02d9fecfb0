package parse

import (
	"errors"
	"fmt"

	"github.com/jacoelho/xsd/pkg/xmltext"
)

type Mode int

const (
	Strict Mode = iota
	Fast
)

var ErrBadMode = errors.New("bad parse mode")

func ParseModeString(v string) (Mode, error) {
	m, ok := map[string]Mode{
		"strict": Strict,
		"s":      Strict,
		"fast":   Fast,
		"f":      Fast,
	}[v]
	if ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadMode, v)
}

func (m Mode) String() string {
	d, err := m.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case Strict:
		return []byte("strict"), nil
	case Fast:
		return []byte("fast"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a parse mode>", m)
	}
}

func (m *Mode) UnmarshalText(d []byte) error {
	pm, err := ParseModeString(string(d))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

type parseOpts struct {
	mode     Mode
	maxDepth int
}

func (o *parseOpts) decoderOpts() []xmltext.Options {
	var res []xmltext.Options
	switch o.mode {
	case Fast:
		res = append(res, xmltext.FastValidation())
	default:
		res = append(res,
			xmltext.Strict(true),
			xmltext.TrackLineColumn(true),
			xmltext.ResolveEntities(true),
		)
	}
	res = append(res, xmltext.CoalesceCharData(false))
	if o.maxDepth > 0 {
		res = append(res, xmltext.MaxDepth(o.maxDepth))
	}
	return res
}

type ParseOption func(*parseOpts)

func ParseMode(m Mode) ParseOption {
	return func(o *parseOpts) { o.mode = m }
}
func ParseStrict() ParseOption {
	return ParseMode(Strict)
}
func ParseFast() ParseOption {
	return ParseMode(Fast)
}

// MaxDepth limits element nesting. Zero keeps the tokenizer default.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// ModeFromOpts extracts the parse mode from options.
func ModeFromOpts(opts ...ParseOption) Mode {
	o := &parseOpts{}
	for _, f := range opts {
		f(o)
	}
	return o.mode
}

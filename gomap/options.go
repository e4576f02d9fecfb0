package gomap

import (
	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/parse"
)

// MapOption is an option for controlling the mapping process from Go to XML IR.
type MapOption interface {
	applyMap(*mapConfig)
}

// UnmapOption is an option for controlling the unmapping process from XML IR to Go.
type UnmapOption interface {
	applyUnmap(*unmapConfig)
}

// BoolPolicy selects how boolean fields treat literals other than True and False.
type BoolPolicy int

const (
	// BoolLenient stores false for unrecognized literals.
	BoolLenient BoolPolicy = iota
	// BoolStrict fails with a ConversionError.
	BoolStrict
)

// mapConfig holds configuration for the mapping process.
type mapConfig struct {
	// EncodeOptions to pass through to encode.Encode
	EncodeOptions []encode.EncodeOption

	// RootName overrides the document element name.
	RootName string
}

// unmapConfig holds configuration for the unmapping process.
type unmapConfig struct {
	// ParseOptions to pass through to parse.Parse
	ParseOptions []parse.ParseOption

	BoolPolicy BoolPolicy
}

func newMapConfig(opts ...MapOption) *mapConfig {
	cfg := &mapConfig{}
	for _, opt := range opts {
		opt.applyMap(cfg)
	}
	return cfg
}

func newUnmapConfig(opts ...UnmapOption) *unmapConfig {
	cfg := &unmapConfig{BoolPolicy: BoolLenient}
	for _, opt := range opts {
		opt.applyUnmap(cfg)
	}
	return cfg
}

type encodeOptions []encode.EncodeOption

func (o encodeOptions) applyMap(c *mapConfig) {
	c.EncodeOptions = append(c.EncodeOptions, o...)
}

// EncodeOptions passes options through to encode.Encode.
func EncodeOptions(opts ...encode.EncodeOption) MapOption {
	return encodeOptions(opts)
}

type parseOptions []parse.ParseOption

func (o parseOptions) applyUnmap(c *unmapConfig) {
	c.ParseOptions = append(c.ParseOptions, o...)
}

// ParseOptions passes options through to parse.Parse.
func ParseOptions(opts ...parse.ParseOption) UnmapOption {
	return parseOptions(opts)
}

type rootName string

func (r rootName) applyMap(c *mapConfig) { c.RootName = string(r) }

// RootName sets the document element name used by Marshal and ToIR.
func RootName(name string) MapOption {
	return rootName(name)
}

func (p BoolPolicy) applyUnmap(c *unmapConfig) { c.BoolPolicy = p }

func WithBoolPolicy(p BoolPolicy) UnmapOption {
	return p
}

// StrictBools is WithBoolPolicy(BoolStrict).
func StrictBools() UnmapOption {
	return BoolStrict
}

// ToEncodeOptions extracts EncodeOptions from a slice of MapOptions.
func ToEncodeOptions(opts ...MapOption) []encode.EncodeOption {
	return newMapConfig(opts...).EncodeOptions
}

// ToParseOptions extracts ParseOptions from a slice of UnmapOptions.
func ToParseOptions(opts ...UnmapOption) []parse.ParseOption {
	return newUnmapConfig(opts...).ParseOptions
}

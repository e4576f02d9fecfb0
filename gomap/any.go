package gomap

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// AnyKind is the most specific scalar kind an AnyValue's text parses as.
type AnyKind int

const (
	AnyAbsent AnyKind = iota
	AnyString
	AnyInt
	AnyFloat
	AnyBool
)

func (k AnyKind) String() string {
	switch k {
	case AnyAbsent:
		return "absent"
	case AnyString:
		return "string"
	case AnyInt:
		return "int"
	case AnyFloat:
		return "float"
	case AnyBool:
		return "bool"
	default:
		return "AnyKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// AnyValue holds raw text whose type is decided when it is read.
//
// Typed accessors return ok == false when the text does not convert; they
// never panic. Conversions are computed at most once and shared by copies of
// the value, so concurrent reads are safe.
type AnyValue struct {
	raw     string
	present bool
	memo    *anyMemo
}

type anyMemo struct {
	once sync.Once
	kind AnyKind
	i    int64
	iok  bool
	f    float64
	fok  bool
	b    bool
	bok  bool
}

func NewAny(raw string) AnyValue {
	return AnyValue{raw: raw, present: true, memo: &anyMemo{}}
}

// AnyOf formats a scalar as an AnyValue.
func AnyOf(v any) AnyValue {
	switch x := v.(type) {
	case AnyValue:
		return x
	case string:
		return NewAny(x)
	case bool:
		return NewAny(formatBool(x))
	case float32:
		return NewAny(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case float64:
		return NewAny(strconv.FormatFloat(x, 'g', -1, 64))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewAny(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewAny(strconv.FormatUint(rv.Uint(), 10))
	case reflect.String:
		return NewAny(rv.String())
	}
	return AnyValue{}
}

func (a AnyValue) load() *anyMemo {
	m := a.memo
	if m == nil {
		m = &anyMemo{}
	}
	m.once.Do(func() {
		if !a.present {
			m.kind = AnyAbsent
			return
		}
		s := strings.TrimSpace(a.raw)
		m.i, m.iok = parseIntText(s)
		m.f, m.fok = parseFloatText(s)
		m.b, m.bok = parseBoolText(s)
		switch {
		case m.iok:
			m.kind = AnyInt
		case m.fok:
			m.kind = AnyFloat
		case m.bok:
			m.kind = AnyBool
		default:
			m.kind = AnyString
		}
	})
	return m
}

func (a AnyValue) IsPresent() bool { return a.present }
func (a AnyValue) Raw() string     { return a.raw }
func (a AnyValue) Kind() AnyKind   { return a.load().kind }

// Text returns the raw text; ok is false only when the value is absent.
func (a AnyValue) Text() (string, bool) {
	return a.raw, a.present
}

func (a AnyValue) String() string { return a.raw }

func (a AnyValue) Int() (int64, bool) {
	m := a.load()
	return m.i, m.iok
}

// Float accepts integer text as well as decimal and exponent forms.
func (a AnyValue) Float() (float64, bool) {
	m := a.load()
	return m.f, m.fok
}

// Bool recognizes True and False.
func (a AnyValue) Bool() (bool, bool) {
	m := a.load()
	return m.b, m.bok
}

// Equal compares raw text and presence.
func (a AnyValue) Equal(b AnyValue) bool {
	return a.present == b.present && a.raw == b.raw
}

func (a AnyValue) MarshalText() ([]byte, error) {
	return []byte(a.raw), nil
}

func (a *AnyValue) UnmarshalText(d []byte) error {
	*a = NewAny(string(d))
	return nil
}

// Get converts a to T, which must be a string, bool, integer or float kind.
func Get[T any](a AnyValue) (T, bool) {
	var zero T
	if !a.present {
		return zero, false
	}
	rv := reflect.New(reflect.TypeFor[T]()).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(a.raw)
	case reflect.Bool:
		b, ok := a.Bool()
		if !ok {
			return zero, false
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := a.Int()
		if !ok || rv.OverflowInt(i) {
			return zero, false
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := a.Int()
		if !ok || i < 0 || rv.OverflowUint(uint64(i)) {
			return zero, false
		}
		rv.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		f, ok := a.Float()
		if !ok || rv.OverflowFloat(f) {
			return zero, false
		}
		rv.SetFloat(f)
	default:
		return zero, false
	}
	return rv.Interface().(T), true
}

func parseIntText(s string) (int64, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

func parseFloatText(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func parseBoolText(s string) (bool, bool) {
	switch s {
	case "True":
		return true, true
	case "False":
		return false, true
	}
	return false, false
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

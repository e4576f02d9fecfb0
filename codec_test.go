package xmlmap_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/xmlmap"
	"github.com/signadot/xmlmap/gomap"
	"github.com/signadot/xmlmap/ir"
	"github.com/signadot/xmlmap/parse"
)

type simple struct {
	A []int      `xml:"a"`
	B gomap.Char `xml:"b"`
	C bool       `xml:"c"`
	D bool       `xml:"d"`
	E *string    `xml:"e"`
}

type book struct {
	XMLName     struct{} `xml:"book_t"`
	Title       string   `xml:"title"`
	Edition     int      `xml:"edition,required"`
	Author      []string `xml:"author"`
	Description *string  `xml:"description"`
}

func TestCodecRoundTrip(t *testing.T) {
	for _, mode := range []parse.Mode{parse.Strict, parse.Fast} {
		for _, pretty := range []bool{true, false} {
			c := xmlmap.New()
			in := simple{A: []int{1, 2, 3}, B: '|', D: true}
			var out []byte
			if !c.Encode(in, &out, pretty) {
				t.Fatalf("Encode failed: %s", c.LastEncodeError())
			}
			if got := strings.Contains(string(out), "\n"); got != pretty {
				t.Errorf("pretty=%v output %q", pretty, out)
			}
			var back simple
			if !c.Decode(&back, out, mode) {
				t.Fatalf("Decode failed: %s", c.LastDecodeError())
			}
			if diff := cmp.Diff(in, back); diff != "" {
				t.Errorf("%s: round trip mismatch (-want +got):\n%s", mode, diff)
			}
			if c.LastDecodeError() != "" || c.LastEncodeError() != "" {
				t.Error("successful calls leave empty diagnostics")
			}
		}
	}
}

func TestCodecDecodeDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains []string
	}{
		{name: "not xml", doc: "error xml", contains: []string{"parse error"}},
		{name: "truncated", doc: "<book_t><title>x</title></", contains: []string{"parse error"}},
		{
			name:     "missing field",
			doc:      `<book_t><title>C++ templates</title><author>David Vandevoorde</author></book_t>`,
			contains: []string{"edition", "book"},
		},
		{
			name:     "conversion",
			doc:      `<book_t><title>C++ templates</title><edition>invalid number</edition></book_t>`,
			contains: []string{"edition", "invalid number"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := xmlmap.New()
			var b book
			if c.Decode(&b, []byte(tt.doc), parse.Strict) {
				t.Fatal("expected Decode to fail")
			}
			msg := c.LastDecodeError()
			if msg == "" {
				t.Fatal("expected a diagnostic")
			}
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("diagnostic %q does not mention %q", msg, s)
				}
			}
			if c.LastEncodeError() != "" {
				t.Error("decode failures do not touch the encode slot")
			}
		})
	}
}

func TestCodecSyntaxErrorDetail(t *testing.T) {
	c := xmlmap.New()
	var s simple
	if c.Decode(&s, []byte("<simple_t>\n<a>1</b>\n</simple_t>"), parse.Strict) {
		t.Fatal("expected Decode to fail")
	}
	if !errors.Is(c.DecodeErr(), ir.ErrParse) {
		t.Errorf("expected a parse error, got %v", c.DecodeErr())
	}
	if !strings.Contains(c.LastDecodeError(), "line 2") {
		t.Errorf("diagnostic should carry the line: %s", c.LastDecodeError())
	}
}

func TestCodecMalformedTarget(t *testing.T) {
	c := xmlmap.New()
	in := simple{A: []int{1, 2, 3}, B: '|', D: true}
	out := []byte("<<dd>>")
	if c.Encode(in, &out, true) {
		t.Fatal("expected Encode to fail")
	}
	if string(out) != "<<dd>>" {
		t.Errorf("target buffer changed to %q", out)
	}
	if c.LastEncodeError() == "" {
		t.Error("expected an encode diagnostic")
	}
	var we *gomap.WriteError
	if !errors.As(c.EncodeErr(), &we) {
		t.Errorf("expected WriteError, got %v", c.EncodeErr())
	}

	// a well-formed buffer is replaced
	out = []byte("<old>1</old>")
	if !c.Encode(in, &out, false) {
		t.Fatalf("Encode failed: %s", c.LastEncodeError())
	}
	want := `<simple><a>1</a><a>2</a><a>3</a><b>|</b><c>False</c><d>True</d></simple>`
	if string(out) != want {
		t.Errorf("got %s\nwant %s", out, want)
	}
	if c.LastEncodeError() != "" {
		t.Error("a successful Encode clears the slot")
	}
	if c.Encode(in, nil, false) {
		t.Error("expected a nil buffer to fail")
	}
}

func TestCodecSlotsIndependent(t *testing.T) {
	c := xmlmap.New()
	var s simple
	if c.Decode(&s, []byte("error xml"), parse.Fast) {
		t.Fatal("expected Decode to fail")
	}
	var out []byte
	if !c.Encode(simple{}, &out, false) {
		t.Fatalf("Encode failed: %s", c.LastEncodeError())
	}
	if c.LastDecodeError() == "" {
		t.Error("Encode must not clear the decode slot")
	}
	if !c.Decode(&s, out, parse.Fast) {
		t.Fatalf("Decode failed: %s", c.LastDecodeError())
	}
	if c.LastDecodeError() != "" {
		t.Error("a successful Decode clears the slot")
	}

	other := xmlmap.New()
	if other.LastDecodeError() != "" {
		t.Error("codecs do not share diagnostics")
	}
}

func TestCodecOptions(t *testing.T) {
	m := gomap.NewMapper()
	if err := m.Require(reflect.TypeFor[simple](), "e"); err != nil {
		t.Fatal(err)
	}
	c := xmlmap.New(
		xmlmap.WithMapper(m),
		xmlmap.WithUnmapOptions(gomap.StrictBools()),
		xmlmap.WithMapOptions(gomap.RootName("simple_t")),
	)
	var s simple
	if c.Decode(&s, []byte(`<simple_t><e>x</e><c>yes</c></simple_t>`), parse.Strict) {
		t.Error("strict bools should reject yes")
	}
	if c.Decode(&s, []byte(`<simple_t><c>True</c></simple_t>`), parse.Strict) {
		t.Error("e is required on this mapper")
	}
	var out []byte
	if !c.Encode(simple{E: new(string)}, &out, false) {
		t.Fatalf("Encode failed: %s", c.LastEncodeError())
	}
	if !strings.HasPrefix(string(out), "<simple_t>") {
		t.Errorf("got %s", out)
	}
}

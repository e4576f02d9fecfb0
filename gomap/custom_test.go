package gomap_test

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/gomap"
	"github.com/signadot/xmlmap/ir"
	"github.com/signadot/xmlmap/parse"
)

// Point is stored as <p x="1" y="2"/>.
type Point struct {
	X, Y int
}

func (p *Point) FromXML(n *ir.Node) error {
	for _, a := range []struct {
		name string
		dst  *int
	}{{"x", &p.X}, {"y", &p.Y}} {
		v, ok := n.Attr(a.name)
		if !ok {
			return fmt.Errorf("missing %s", a.name)
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*a.dst = i
	}
	return nil
}

func (p Point) ToXML() (*ir.Node, error) {
	return ir.Element("p").
		WithAttr("x", strconv.Itoa(p.X)).
		WithAttr("y", strconv.Itoa(p.Y)), nil
}

type Shape struct {
	Name   string  `xml:"name"`
	Points []Point `xml:"point"`
	Center *Point  `xml:"center"`
}

func TestCustomHooks(t *testing.T) {
	in := Shape{Name: "tri", Points: []Point{{0, 0}, {1, 0}, {0, 1}}, Center: &Point{1, 1}}
	d, err := gomap.Marshal(in, gomap.RootName("shape"), gomap.EncodeOptions(encode.EncodeWire(true)))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `<shape><name>tri</name><point x="0" y="0"/><point x="1" y="0"/><point x="0" y="1"/>` +
		`<center x="1" y="1"/></shape>`
	if string(d) != want {
		t.Errorf("got %s\nwant %s", d, want)
	}
	var out Shape
	if err := gomap.Unmarshal(d, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	err = gomap.Unmarshal([]byte(`<shape><point x="1"/></shape>`), &out)
	var ue *gomap.UnmarshalError
	if !errors.As(err, &ue) || ue.FieldPath != "point[0]" {
		t.Fatalf("expected UnmarshalError at point[0], got %v", err)
	}

	var p Point
	if err := gomap.Unmarshal([]byte(`<root x="3" y="4"/>`), &p); err != nil {
		t.Fatalf("top level FromXML: %v", err)
	}
	if p != (Point{3, 4}) {
		t.Errorf("got %+v", p)
	}
}

type Release struct {
	Version string     `xml:"version"`
	Date    time.Time  `xml:"date"`
	Expires *time.Time `xml:"expires"`
}

func TestTextMarshaler(t *testing.T) {
	in := Release{Version: "1.6.1", Date: time.Date(2017, 10, 25, 12, 0, 0, 0, time.UTC)}
	d, err := gomap.Marshal(in, gomap.EncodeOptions(encode.EncodeWire(true)))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `<Release><version>1.6.1</version><date>2017-10-25T12:00:00Z</date></Release>`
	if string(d) != want {
		t.Errorf("got %s\nwant %s", d, want)
	}
	var out Release
	if err := gomap.Unmarshal(d, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	err = gomap.Unmarshal([]byte(`<r><date>yesterday</date></r>`), &out)
	var ce *gomap.ConversionError
	if !errors.As(err, &ce) || ce.FieldPath != "date" {
		t.Fatalf("expected ConversionError at date, got %v", err)
	}

	s, err := gomap.SchemaOf[Release]()
	if err != nil {
		t.Fatalf("SchemaOf error: %v", err)
	}
	if f := s.Field("date"); !f.ImplementsTextMarshaler || !f.ImplementsTextUnmarshaler {
		t.Errorf("date should report text marshaling: %+v", f)
	}
}

type Envelope struct {
	ID   string   `xml:"id"`
	Body *ir.Node `xml:"body"`
}

func TestRawNode(t *testing.T) {
	doc := `<env><id>1</id><body a="b"><x>1</x><y/><![CDATA[raw]]></body></env>`
	var e Envelope
	if err := gomap.Unmarshal([]byte(doc), &e); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if e.Body == nil {
		t.Fatal("expected body")
	}
	want := ir.Element("body", ir.FromText("x", "1"), ir.Element("y")).WithAttr("a", "b").WithCData("raw")
	if !ir.Equal(want, e.Body) {
		t.Errorf("got %s, want %s", encode.MustString(e.Body, encode.EncodeWire(true)),
			encode.MustString(want, encode.EncodeWire(true)))
	}
	if e.Body.Parent != nil {
		t.Error("captured node should be detached")
	}
	d, err := gomap.Marshal(e, gomap.RootName("env"), gomap.EncodeOptions(encode.EncodeWire(true)))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(d) != doc {
		t.Errorf("got %s\nwant %s", d, doc)
	}

	if err := gomap.Unmarshal([]byte(`<env><id>2</id></env>`), &e); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if e.Body != nil {
		t.Error("absent raw node should be nil")
	}
}

type Chain struct {
	Name string `xml:"name"`
	Next *Chain `xml:"next"`
}

func TestCycleDetection(t *testing.T) {
	c := &Chain{Name: "a"}
	c.Next = &Chain{Name: "b", Next: c}
	_, err := gomap.Marshal(c)
	var me *gomap.MarshalError
	if !errors.As(err, &me) {
		t.Fatalf("expected MarshalError, got %v", err)
	}
	if !strings.Contains(me.Message, "circular reference") {
		t.Errorf("unexpected message %q", me.Message)
	}

	// shared but acyclic pointers are fine
	leaf := &Chain{Name: "leaf"}
	type pair struct {
		L *Chain `xml:"l"`
		R *Chain `xml:"r"`
	}
	d, err := gomap.Marshal(pair{L: leaf, R: leaf}, gomap.EncodeOptions(encode.EncodeWire(true)))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `<pair><l><name>leaf</name></l><r><name>leaf</name></r></pair>`
	if string(d) != want {
		t.Errorf("got %s\nwant %s", d, want)
	}
}

type Feed struct {
	XMLName struct{} `xml:"rss"`
	Title   string   `xml:"title"`
}

func TestRootName(t *testing.T) {
	n, err := gomap.ToIR(Feed{Title: "t"})
	if err != nil {
		t.Fatalf("ToIR error: %v", err)
	}
	if n.Name() != "rss" {
		t.Errorf("got root %q", n.Name())
	}
	if len(n.Children) != 1 || n.Children[0].Name() != "title" {
		t.Errorf("XMLName should not be encoded: %s", encode.MustString(n, encode.EncodeWire(true)))
	}
	s, err := gomap.SchemaOf[Feed]()
	if err != nil {
		t.Fatalf("SchemaOf error: %v", err)
	}
	if s.Root != "rss" || len(s.Fields) != 1 {
		t.Errorf("got root %q with %d fields", s.Root, len(s.Fields))
	}

	type untitled struct {
		_     struct{}
		Title string `xml:"title"`
	}
	n, err = gomap.ToIR(untitled{Title: "t"})
	if err != nil {
		t.Fatalf("ToIR error: %v", err)
	}
	if n.Name() != "untitled" {
		t.Errorf("blank field should not name the root, got %q", n.Name())
	}

	n, err = gomap.ToIR(&Feed{Title: "t"}, gomap.RootName("atom:feed"))
	if err != nil {
		t.Fatalf("ToIR error: %v", err)
	}
	if n.Prefix != "atom" || n.Tag != "feed" {
		t.Errorf("got root %q", n.Name())
	}

	var f Feed
	node, err := parse.Parse([]byte(`<anything><title>x</title></anything>`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if err := gomap.FromIR(node, &f); err != nil {
		t.Fatalf("FromIR error: %v", err)
	}
	if f.Title != "x" {
		t.Errorf("got %q", f.Title)
	}
}

func TestEscaping(t *testing.T) {
	in := BookAttr{Attrs: map[string]float32{"id": 1}, Title: `a < b & "c"`}
	d, err := gomap.Marshal(in, gomap.EncodeOptions(encode.EncodeWire(true)))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `<BookAttr id="1"><title>a &lt; b &amp; "c"</title></BookAttr>`
	if string(d) != want {
		t.Errorf("got %s\nwant %s", d, want)
	}
	var out BookAttr
	if err := gomap.Unmarshal(d, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if out.Title != in.Title {
		t.Errorf("got %q", out.Title)
	}
}

func TestUnmarshalParseOptions(t *testing.T) {
	for _, mode := range []parse.Mode{parse.Strict, parse.Fast} {
		t.Run(mode.String(), func(t *testing.T) {
			var lib Library
			err := gomap.Unmarshal([]byte(libraryDoc), &lib, gomap.ParseOptions(parse.ParseMode(mode)))
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			if diff := cmp.Diff(wantLibraryBooks(), lib.Book); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
	opts := gomap.ToParseOptions(gomap.ParseOptions(parse.ParseFast()), gomap.StrictBools())
	if len(opts) != 1 || parse.ModeFromOpts(opts...) != parse.Fast {
		t.Errorf("unexpected parse options %v", opts)
	}
	if !encode.IsWire(gomap.ToEncodeOptions(gomap.EncodeOptions(encode.EncodeWire(true)), gomap.RootName("r"))...) {
		t.Error("expected wire encode option")
	}
}

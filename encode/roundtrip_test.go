package encode_test

import (
	"bytes"
	"testing"

	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/ir"
	"github.com/signadot/xmlmap/parse"
)

func TestRoundTrip(t *testing.T) {
	docs := []string{
		`<a/>`,
		`<a x="1" y="&quot;q&quot;"><b>t &amp; u</b><b>v</b></a>`,
		`<rss version="2.0"><channel><item><itunes:author>x</itunes:author><description><![CDATA[<i>hi</i>]]></description></item></channel></rss>`,
		`<p>lead<em>mid</em>tail</p>`,
		`<v a="line1&#xA;line2"/>`,
	}
	for _, d := range docs {
		for _, wire := range []bool{false, true} {
			orig, err := parse.Parse([]byte(d))
			if err != nil {
				t.Fatal(err)
			}
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(orig, buf, encode.EncodeWire(wire)); err != nil {
				t.Fatal(err)
			}
			back, err := parse.Parse(buf.Bytes())
			if err != nil {
				t.Fatalf("re-parse of %q: %v", buf.String(), err)
			}
			if !ir.Equal(orig, back) {
				t.Errorf("wire=%v: %q re-encoded as %q changed the tree", wire, d, buf.String())
			}
		}
	}
}

func TestRoundTripCData(t *testing.T) {
	nodes := []*ir.Node{
		ir.Element("a").WithCData("a]]>b"),
		ir.Element("a").WithCData("<p>x</p>", "y]]>z"),
		ir.Element("a").WithCData("]]>", "]]", ">"),
		ir.FromText("a", "t").WithCData("x", "y"),
		ir.Element("a", ir.Element("b")).WithCData("c]]>d", "e"),
	}
	for _, n := range nodes {
		for _, wire := range []bool{false, true} {
			for _, m := range []parse.Mode{parse.Strict, parse.Fast} {
				d := encode.MustString(n, encode.EncodeWire(wire))
				back, err := parse.Parse([]byte(d), parse.ParseMode(m))
				if err != nil {
					t.Fatalf("re-parse of %q: %v", d, err)
				}
				if !ir.Equal(n, back) {
					t.Errorf("wire=%v %s: %q read back as cdata %q", wire, m, d, back.CData)
				}
			}
		}
	}
}

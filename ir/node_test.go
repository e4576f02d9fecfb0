package ir

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() *Node {
	return Element("rss",
		Element("channel",
			FromText("title", "feed"),
			Element("item", FromText("itunes:author", "a")).WithAttr("id", "1"),
			Element("item", FromText("itunes:author", "b")).WithCData("<p>x</p>"),
		),
	).WithAttr("version", "2.0")
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in            string
		prefix, local string
	}{
		{"author", "", "author"},
		{"itunes:author", "itunes", "author"},
		{"a:b:c", "a", "b:c"},
		{":x", "", ":x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, l := SplitName(tt.in)
			if p != tt.prefix || l != tt.local {
				t.Errorf("SplitName(%q) = %q, %q; want %q, %q", tt.in, p, l, tt.prefix, tt.local)
			}
			if tt.prefix != "" && JoinName(p, l) != tt.in {
				t.Errorf("JoinName(%q, %q) = %q", p, l, JoinName(p, l))
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	root := sampleTree()
	ch := root.Child("channel")
	if ch == nil {
		t.Fatal("no channel")
	}
	items := ch.ChildrenNamed("item")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if got := items[1].ParentIndex; got != 2 {
		t.Errorf("ParentIndex = %d, want 2", got)
	}
	if got := items[1].Path(); got != "/rss/channel/item[1]" {
		t.Errorf("Path() = %q", got)
	}
	auth := items[0].Child("itunes:author")
	if auth == nil || auth.Prefix != "itunes" || auth.Tag != "author" {
		t.Fatalf("bad prefixed child %+v", auth)
	}
	if got := auth.Path(); got != "/rss/channel/item[0]/itunes:author" {
		t.Errorf("Path() = %q", got)
	}
	if v, ok := items[0].Attr("id"); !ok || v != "1" {
		t.Errorf("Attr(id) = %q, %v", v, ok)
	}
	if _, ok := items[1].Attr("id"); ok {
		t.Error("unexpected attr")
	}
	if auth.Root() != root {
		t.Error("Root() did not reach the document element")
	}
	if diff := cmp.Diff([]string{"title", "item", "item"}, ch.ChildNames()); diff != "" {
		t.Errorf("ChildNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetAttrReplaces(t *testing.T) {
	n := Element("a").WithAttr("x", "1").WithAttr("y", "2").WithAttr("x", "3")
	want := []Attr{{"x", "3"}, {"y", "2"}}
	if diff := cmp.Diff(want, n.Attrs); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneEqual(t *testing.T) {
	root := sampleTree()
	c := root.Clone()
	if !Equal(root, c) {
		t.Fatal("clone not equal")
	}
	if c.Children[0].Parent != c {
		t.Error("clone parent not rewired")
	}
	c.Children[0].Children[1].Attrs[0].Value = "9"
	if Equal(root, c) {
		t.Error("clone shares attribute storage")
	}
	if v, _ := root.Children[0].Children[1].Attr("id"); v != "1" {
		t.Errorf("original mutated: %q", v)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil node", nil, Element("a"), false},
		{"same", FromText("a", "x"), FromText("a", "x"), true},
		{"text", FromText("a", "x"), FromText("a", "y"), false},
		{"prefix", Element("p:a"), Element("q:a"), false},
		{"attr order", Element("a").WithAttr("x", "1").WithAttr("y", "2"),
			Element("a").WithAttr("y", "2").WithAttr("x", "1"), false},
		{"cdata", Element("a").WithCData("x"), Element("a"), false},
		{"children", Element("a", Element("b")), Element("a", Element("c")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	root := sampleTree()
	d, err := ToJSON(root)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(d), `"itunes:author"`) {
		t.Errorf("qualified name missing from %s", d)
	}
	back, err := FromJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(root, back) {
		t.Errorf("json round trip lost information:\n%s", d)
	}
	if back.Children[0].Parent != back {
		t.Error("parent not set on decode")
	}
}

func TestYAML(t *testing.T) {
	d, err := ToYAML(FromText("a", "x").WithAttr("k", "v"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(d)
	for _, want := range []string{"name: a", "k: v", "text: x"} {
		if !strings.Contains(got, want) {
			t.Errorf("yaml %q missing %q", got, want)
		}
	}
	if strings.Index(got, "name:") > strings.Index(got, "text:") {
		t.Errorf("yaml lost key order: %q", got)
	}
}

package libdiff_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/xmlmap/ir"
	"github.com/signadot/xmlmap/libdiff"
	"github.com/signadot/xmlmap/parse"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return n
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     []libdiff.Change
	}{
		{
			name: "equal",
			from: `<a x="1"><b>1</b><![CDATA[c]]></a>`,
			to:   `<a x="1"><b>1</b><![CDATA[c]]></a>`,
		},
		{
			name: "attrs text and insertion",
			from: `<a x="1"><b>1</b><c/></a>`,
			to:   `<a x="2" y="3"><b>2</b><d/><c/></a>`,
			want: []libdiff.Change{
				{Path: "/a/@x", Kind: libdiff.Replace, From: "1", To: "2"},
				{Path: "/a/@y", Kind: libdiff.Insert, To: "3"},
				{Path: "/a/b/text()", Kind: libdiff.Replace, From: "1", To: "2"},
				{Path: "/a/d", Kind: libdiff.Insert, To: "<d/>"},
			},
		},
		{
			name: "repeated deletion",
			from: `<r><i>1</i><i>2</i></r>`,
			to:   `<r><i>1</i></r>`,
			want: []libdiff.Change{
				{Path: "/r/i[1]", Kind: libdiff.Delete, From: "<i>2</i>"},
			},
		},
		{
			name: "text appears",
			from: `<r><t/></r>`,
			to:   `<r><t>x</t></r>`,
			want: []libdiff.Change{
				{Path: "/r/t/text()", Kind: libdiff.Insert, To: "x"},
			},
		},
		{
			name: "cdata",
			from: `<r><![CDATA[a]]> <![CDATA[b]]></r>`,
			to:   `<r><![CDATA[a]]> <![CDATA[B]]> <![CDATA[c]]></r>`,
			want: []libdiff.Change{
				{Path: "/r/cdata[1]", Kind: libdiff.Replace, From: "b", To: "B"},
				{Path: "/r/cdata[2]", Kind: libdiff.Insert, To: "c"},
			},
		},
		{
			name: "namespaced rename",
			from: `<r><itunes:author>a</itunes:author></r>`,
			to:   `<r><atom:author>a</atom:author></r>`,
			want: []libdiff.Change{
				{Path: "/r/itunes:author", Kind: libdiff.Delete, From: "<itunes:author>a</itunes:author>"},
				{Path: "/r/atom:author", Kind: libdiff.Insert, To: "<atom:author>a</atom:author>"},
			},
		},
		{
			name: "root",
			from: `<a/>`,
			to:   `<b/>`,
			want: []libdiff.Change{
				{Path: "/a", Kind: libdiff.Replace, From: "<a/>", To: "<b/>"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := libdiff.Diff(mustParse(t, tt.from), mustParse(t, tt.to))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffNil(t *testing.T) {
	n := ir.Element("a")
	if got := libdiff.Diff(nil, nil); got != nil {
		t.Errorf("got %v", got)
	}
	got := libdiff.Diff(nil, n)
	if len(got) != 1 || got[0].Kind != libdiff.Insert {
		t.Errorf("got %v", got)
	}
	got = libdiff.Diff(n, nil)
	if len(got) != 1 || got[0].Kind != libdiff.Delete {
		t.Errorf("got %v", got)
	}
}

func TestChangeString(t *testing.T) {
	tests := []struct {
		c    libdiff.Change
		want string
	}{
		{libdiff.Change{Path: "/a/@x", Kind: libdiff.Replace, From: "1", To: "2"}, "~ /a/@x: 1 -> 2"},
		{libdiff.Change{Path: "/a/d", Kind: libdiff.Insert, To: "<d/>"}, "+ /a/d: <d/>"},
		{libdiff.Change{Path: "/a/d", Kind: libdiff.Delete, From: "<d/>"}, "- /a/d: <d/>"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestTextDiff(t *testing.T) {
	if got := libdiff.TextDiff("a\n", "a\n"); got != "" {
		t.Errorf("equal texts: got %q", got)
	}
	got := libdiff.TextDiff("a\nb\nc\n", "a\nx\nc\n")
	want := " a\n-b\n+x\n c\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

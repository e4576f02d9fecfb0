package libdiff

import (
	"fmt"
	"slices"

	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Kind int

const (
	Insert Kind = iota
	Delete
	Replace
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "~"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Change is one difference between two trees. Path locates it in the
// document it was found in: the second tree for insertions, the first
// otherwise. Attributes are addressed as path/@name, text as path/text()
// and CDATA sections as path/cdata[i].
type Change struct {
	Path string
	Kind Kind
	From string
	To   string
}

func (c Change) String() string {
	switch c.Kind {
	case Insert:
		return fmt.Sprintf("+ %s: %s", c.Path, c.To)
	case Delete:
		return fmt.Sprintf("- %s: %s", c.Path, c.From)
	default:
		return fmt.Sprintf("~ %s: %s -> %s", c.Path, c.From, c.To)
	}
}

// Diff returns the changes turning from into to, in document order.
// It returns nil when the trees are equal.
func Diff(from, to *ir.Node) []Change {
	switch {
	case from == nil && to == nil:
		return nil
	case from == nil:
		return []Change{{Path: to.Path(), Kind: Insert, To: wire(to)}}
	case to == nil:
		return []Change{{Path: from.Path(), Kind: Delete, From: wire(from)}}
	}
	return diffElement(nil, from, to)
}

func diffElement(res []Change, from, to *ir.Node) []Change {
	path := from.Path()
	if from.Name() != to.Name() {
		return append(res, Change{Path: path, Kind: Replace, From: wire(from), To: wire(to)})
	}
	res = diffAttrs(res, path, from, to)
	if from.Text != to.Text {
		res = append(res, textChange(path+"/text()", from.Text, to.Text))
	}
	res = diffChildren(res, from, to)
	return diffCData(res, path, from.CData, to.CData)
}

func textChange(path, from, to string) Change {
	switch {
	case from == "":
		return Change{Path: path, Kind: Insert, To: to}
	case to == "":
		return Change{Path: path, Kind: Delete, From: from}
	}
	return Change{Path: path, Kind: Replace, From: from, To: to}
}

func diffAttrs(res []Change, path string, from, to *ir.Node) []Change {
	for _, a := range from.Attrs {
		v, ok := to.Attr(a.Name)
		switch {
		case !ok:
			res = append(res, Change{Path: path + "/@" + a.Name, Kind: Delete, From: a.Value})
		case v != a.Value:
			res = append(res, Change{Path: path + "/@" + a.Name, Kind: Replace, From: a.Value, To: v})
		}
	}
	for _, a := range to.Attrs {
		if _, ok := from.Attr(a.Name); !ok {
			res = append(res, Change{Path: path + "/@" + a.Name, Kind: Insert, To: a.Value})
		}
	}
	return res
}

func diffCData(res []Change, path string, from, to []string) []Change {
	if slices.Equal(from, to) {
		return res
	}
	for i := 0; i < max(len(from), len(to)); i++ {
		p := fmt.Sprintf("%s/cdata[%d]", path, i)
		switch {
		case i >= len(to):
			res = append(res, Change{Path: p, Kind: Delete, From: from[i]})
		case i >= len(from):
			res = append(res, Change{Path: p, Kind: Insert, To: to[i]})
		case from[i] != to[i]:
			res = append(res, Change{Path: p, Kind: Replace, From: from[i], To: to[i]})
		}
	}
	return res
}

// diffChildren aligns the child sequences by name, then recurses on the
// aligned pairs.
func diffChildren(res []Change, from, to *ir.Node) []Change {
	nameMap := map[string]rune{}
	fromRunes := mapNamesTo(nameMap, from)
	toRunes := mapNamesTo(nameMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range n {
				c := from.Children[fi]
				res = append(res, Change{Path: c.Path(), Kind: Delete, From: wire(c)})
				fi++
			}
		case diffpatch.DiffEqual:
			for range n {
				res = diffElement(res, from.Children[fi], to.Children[ti])
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				c := to.Children[ti]
				res = append(res, Change{Path: c.Path(), Kind: Insert, To: wire(c)})
				ti++
			}
		}
	}
	return res
}

func mapNamesTo(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Children))
	for i, c := range node.Children {
		name := c.Name()
		r, ok := m[name]
		if !ok {
			r = rune(len(m))
			m[name] = r
		}
		rs[i] = r
	}
	return rs
}

func wire(n *ir.Node) string {
	return encode.MustString(n, encode.EncodeWire(true))
}

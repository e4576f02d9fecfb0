package ir

import (
	"slices"
	"strconv"
	"strings"
)

type Attr struct {
	Name  string
	Value string
}

type Node struct {
	Parent      *Node
	ParentIndex int

	Prefix string
	Tag    string
	Attrs  []Attr

	Children []*Node
	Text     string
	CData    []string
}

// SplitName splits a qualified name at its first colon.
func SplitName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// JoinName is the inverse of SplitName.
func JoinName(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func Element(name string, children ...*Node) *Node {
	res := &Node{}
	res.Prefix, res.Tag = SplitName(name)
	return res.Append(children...)
}

func FromText(name, text string) *Node {
	res := Element(name)
	res.Text = text
	return res
}

func (y *Node) Name() string {
	return JoinName(y.Prefix, y.Tag)
}

func (y *Node) WithAttr(name, value string) *Node {
	y.SetAttr(name, value)
	return y
}

func (y *Node) WithCData(segs ...string) *Node {
	y.CData = append(y.CData, segs...)
	return y
}

func (y *Node) WithText(text string) *Node {
	y.Text = text
	return y
}

// Append adds children to y, fixing up their Parent and ParentIndex.
func (y *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Parent = y
		c.ParentIndex = len(y.Children)
		y.Children = append(y.Children, c)
	}
	return y
}

// SetAttr sets an attribute, replacing an existing one of the same name in place.
func (y *Node) SetAttr(name, value string) {
	for i := range y.Attrs {
		if y.Attrs[i].Name == name {
			y.Attrs[i].Value = value
			return
		}
	}
	y.Attrs = append(y.Attrs, Attr{Name: name, Value: value})
}

func (y *Node) Attr(name string) (string, bool) {
	for i := range y.Attrs {
		if y.Attrs[i].Name == name {
			return y.Attrs[i].Value, true
		}
	}
	return "", false
}

// ChildrenNamed returns the children of y whose qualified name is name, in
// document order.
func (y *Node) ChildrenNamed(name string) []*Node {
	var res []*Node
	for _, c := range y.Children {
		if c.Name() == name {
			res = append(res, c)
		}
	}
	return res
}

// Child returns the first child named name, or nil.
func (y *Node) Child(name string) *Node {
	for _, c := range y.Children {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func (y *Node) IsLeaf() bool {
	return len(y.Children) == 0
}

// IsEmpty reports whether y has no attributes, children, text or CDATA.
func (y *Node) IsEmpty() bool {
	return len(y.Attrs) == 0 && len(y.Children) == 0 && y.Text == "" && len(y.CData) == 0
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Path returns the location of y from the root, with sibling indices for
// repeated names, e.g. "/rss/channel/item[2]/title".
func (y *Node) Path() string {
	var parts []string
	for n := y; n != nil; n = n.Parent {
		part := n.Name()
		if p := n.Parent; p != nil {
			same := 0
			idx := 0
			for _, sib := range p.Children {
				if sib.Name() != part {
					continue
				}
				if sib == n {
					idx = same
				}
				same++
			}
			if same > 1 {
				part += "[" + strconv.Itoa(idx) + "]"
			}
		}
		parts = append(parts, part)
	}
	slices.Reverse(parts)
	return "/" + strings.Join(parts, "/")
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.Prefix = y.Prefix
	dst.Tag = y.Tag
	dst.Text = y.Text
	dst.Attrs = slices.Clone(y.Attrs)
	dst.CData = slices.Clone(y.CData)
	dst.Children = make([]*Node, len(y.Children))
	for i, c := range y.Children {
		dc := c.CloneTo(&Node{})
		dc.Parent = dst
		dc.ParentIndex = i
		dst.Children[i] = dc
	}
	return dst
}

// Walk visits y and its descendants depth first, stopping early if f returns
// false.
func (y *Node) Walk(f func(*Node) bool) bool {
	if !f(y) {
		return false
	}
	for _, c := range y.Children {
		if !c.Walk(f) {
			return false
		}
	}
	return true
}

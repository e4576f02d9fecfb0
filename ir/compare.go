package ir

import (
	"slices"
)

// Equal reports whether a and b are structurally equal.
// Attribute order is significant, as are the order of children and CDATA
// sections. Parent links are ignored.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Prefix != b.Prefix || a.Tag != b.Tag || a.Text != b.Text {
		return false
	}
	if !slices.Equal(a.Attrs, b.Attrs) || !slices.Equal(a.CData, b.CData) {
		return false
	}
	return slices.EqualFunc(a.Children, b.Children, Equal)
}

// ChildNames returns the qualified names of y's children in order.
func (y *Node) ChildNames() []string {
	res := make([]string, len(y.Children))
	for i, c := range y.Children {
		res[i] = c.Name()
	}
	return res
}

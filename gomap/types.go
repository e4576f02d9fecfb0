package gomap

import (
	"reflect"

	"github.com/signadot/xmlmap/ir"
)

// CData holds the verbatim content of a CDATA section.
//
// A field of type CData, *CData or []CData binds the CDATA sections of the
// element that owns the field, never a child element: a single field takes
// the first section, a slice takes every section in document order.
type CData string

func (c CData) Get() string { return string(c) }

// Char is a single character scalar. Decoding fails unless the text is
// exactly one rune.
type Char rune

func (c Char) String() string { return string(rune(c)) }

// Namespaced wraps a field whose element name carries a namespace prefix.
//
// The field name is split at its first underscore: a field named
// itunes_author binds <itunes:author>. Only the prefix is matched and
// emitted; prefixes are not resolved to namespace URIs.
type Namespaced[T any] struct {
	Value T
}

func (n Namespaced[T]) Get() T      { return n.Value }
func (n *Namespaced[T]) Set(v T)    { n.Value = v }
func (Namespaced[T]) isNamespaced() {}

func NS[T any](v T) Namespaced[T] { return Namespaced[T]{Value: v} }

// Leaf is an element with scalar text and attributes, such as
// <changelog author="Lubo" date="1508932800">new version</changelog>.
type Leaf[T any] struct {
	Value T
	Attrs map[string]string
}

func (Leaf[T]) isLeaf() {}

type namespacedMarker interface{ isNamespaced() }
type leafMarker interface{ isLeaf() }

// FromXMLer is implemented by types that decode themselves from a node.
type FromXMLer interface {
	FromXML(*ir.Node) error
}

// ToXMLer is implemented by types that encode themselves to a node. The
// returned node is renamed to the field's element name.
type ToXMLer interface {
	ToXML() (*ir.Node, error)
}

var (
	cdataType      = reflect.TypeFor[CData]()
	charType       = reflect.TypeFor[Char]()
	anyValueType   = reflect.TypeFor[AnyValue]()
	nodePtrType    = reflect.TypeFor[*ir.Node]()
	namespacedType = reflect.TypeFor[namespacedMarker]()
	leafType       = reflect.TypeFor[leafMarker]()
	fromXMLerType  = reflect.TypeFor[FromXMLer]()
	toXMLerType    = reflect.TypeFor[ToXMLer]()

	emptyStructType = reflect.TypeFor[struct{}]()
)

// rootField names the marker field carrying the document element name.
const rootField = "XMLName"

func isNamespacedType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.Implements(namespacedType)
}

func isLeafType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.Implements(leafType)
}

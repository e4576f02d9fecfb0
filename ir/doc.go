// Package ir provides the in-memory node tree for parsed XML documents.
//
// # Overview
//
// Every document handled by xmlmap, whether parsed from text or built from a
// Go value, is represented as an ir.Node tree. The tree is deliberately small:
// it records element names, attributes, character data and CDATA sections,
// and nothing else. Comments, processing instructions and doctype
// declarations are not represented.
//
// # Node Structure
//
// A Node is an element. It carries:
//
//   - Prefix and Tag: the namespace prefix (possibly empty) and local name
//   - Attrs: attributes in document order
//   - Children: child elements in document order
//   - Text: the concatenated character data of the element
//   - CData: the element's CDATA sections, verbatim and in order
//
// Character data that consists solely of whitespace is not recorded in Text.
// CDATA content is never merged into Text.
//
// # Creating Nodes
//
//	item := ir.Element("item",
//	    ir.FromText("title", "Hello"),
//	    ir.FromText("itunes:author", "Alice"),
//	).WithAttr("id", "5")
//
// # Navigating Nodes
//
// Parent and ParentIndex are maintained by Append and the constructors.
// Path returns a slash separated location used in diagnostics:
//
//	node.Path() // e.g. "/rss/channel/item[3]/title"
//
// # JSON and YAML
//
// Nodes marshal to JSON (MarshalJSON) and YAML (MarshalYAML) so that trees
// can be inspected with ordinary tooling.
//
// # Thread Safety
//
// Node structures are not thread-safe. Trees produced by the parser are not
// modified by the mapping engine, so sharing a parsed tree between readers is
// fine.
//
// # Related Packages
//
//   - github.com/signadot/xmlmap/parse - Parses text into IR nodes
//   - github.com/signadot/xmlmap/encode - Encodes IR nodes to text
//   - github.com/signadot/xmlmap/gomap - Maps IR nodes to and from Go values
package ir

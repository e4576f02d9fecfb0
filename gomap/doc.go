// Package gomap binds XML documents to Go structs and back, by reflection.
//
// # Usage
//
//	type Book struct {
//	    XMLName struct{}          `xml:"book"`
//	    Title   string            `xml:"title"`
//	    Edition int               `xml:"edition,required"`
//	    Author  *string           `xml:"author"`
//	    Tags    []string          `xml:"tag"`
//	    Attrs   map[string]string `xml:",attrs"`
//	}
//
//	var b Book
//	err := gomap.Unmarshal(data, &b)
//
//	out, err := gomap.Marshal(b, gomap.EncodeOptions(encode.EncodeWire(true)))
//
// # Field Schema
//
// The schema of a record is its exported fields in declaration order, with
// embedded structs flattened. Struct tags use the key "xml":
//
//   - a bare word or field=name sets the element name (default: the Go field name)
//   - "prefix:local" names a prefixed element
//   - required makes decoding fail when no element matches
//   - attrs captures every attribute of the owning element into a map
//   - cdata binds the owning element's CDATA sections into a string field
//   - "-" or omit skips the field
//
// Mandatory fields can also be registered without tags:
//
//	var _ = gomap.MustRequire[Book]("edition")
//
// # Binding Rules
//
// The Go type of a field selects its binding:
//
//   - scalars (strings, numbers, bool, Char, AnyValue, encoding.TextUnmarshaler):
//     the first matching element's text; empty text leaves the field untouched
//   - *T: nil when no element matches or, for scalars, when its text is empty
//   - []T: every matching sibling in document order; no match leaves the slice as is
//   - *[]T: nil when no element matches
//   - struct: the first matching element, recursively
//   - Namespaced[T]: a field named prefix_local binds <prefix:local>
//   - Leaf[T]: element text and attributes together
//   - CData, *CData, []CData: the owning element's CDATA sections
//   - *ir.Node: a copy of the matching element
//
// Booleans are written True and False. Unknown elements and attributes are
// ignored. Decoding stops at the first missing mandatory field or failed
// conversion; fields bound before the failure keep their values.
//
// # Errors
//
// Failures are reported as *MissingFieldError, *ConversionError,
// *SchemaError, *UnmarshalError, *MarshalError or *WriteError, and syntax
// errors from the parse package wrap ir.ErrParse.
//
// # Related Packages
//
//   - github.com/signadot/xmlmap/ir - IR representation
//   - github.com/signadot/xmlmap/parse - Parse text to IR
//   - github.com/signadot/xmlmap/encode - Encode IR to text
package gomap

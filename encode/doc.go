// Package encode encodes IR nodes to XML text.
//
// # Usage
//
//	node := ir.Element("book",
//	    ir.FromText("title", "Kafka"),
//	).WithAttr("id", "5")
//
//	// Pretty output, two space indent
//	err := encode.Encode(node, w)
//
//	// Compact output with no inserted whitespace
//	err := encode.Encode(node, w, encode.EncodeWire(true))
//
//	// Terminal output
//	err := encode.Encode(node, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// Elements with no content are written self-closing. Within an element,
// character data is written first, then child elements, then CDATA
// sections. An element carrying both character data and children is written
// compactly even in pretty mode so that indentation does not alter its text.
//
// # Related Packages
//
//   - github.com/signadot/xmlmap/ir - IR representation
//   - github.com/signadot/xmlmap/parse - Parse text to IR
package encode

// Package format names the output formats of the xm command.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	if f.IsXML() {
//	    ...
//	}
//
// XML output is produced by package encode; JSON and YAML dumps of the IR
// tree by ir.ToJSON and ir.ToYAML.
//
// # Related Packages
//
//   - github.com/signadot/xmlmap/encode - Encode IR to text
//   - github.com/signadot/xmlmap/ir - IR representation
package format

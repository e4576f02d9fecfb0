// Package xmlmap maps XML documents onto Go records and back.
//
// The Codec type offers a success/failure API that keeps the diagnostic of
// its last failed decode and its last failed encode:
//
//	c := xmlmap.New()
//	var b Book
//	if !c.Decode(&b, data, parse.Strict) {
//	    log.Println(c.LastDecodeError())
//	}
//	var out []byte
//	if !c.Encode(b, &out, true) {
//	    log.Println(c.LastEncodeError())
//	}
//
// The error returning API, struct tags and binding rules are documented in
// package gomap.
//
// # Related Packages
//
//   - github.com/signadot/xmlmap/gomap - record binding
//   - github.com/signadot/xmlmap/ir - IR representation
//   - github.com/signadot/xmlmap/parse - Parse text to IR
//   - github.com/signadot/xmlmap/encode - Encode IR to text
//   - github.com/signadot/xmlmap/libdiff - Diff IR trees
package xmlmap

// Package parse parses XML text into IR nodes.
//
// # Usage
//
//	node, err := parse.Parse(data)
//	if err != nil {
//	    return err
//	}
//
//	// Throughput oriented parsing
//	node, err := parse.Parse(data, parse.ParseMode(parse.Fast))
//
// Tokenizing is delegated to github.com/jacoelho/xsd/pkg/xmltext. The parser
// only builds the tree: it drops comments, processing instructions and
// directives, keeps CDATA sections apart from character data, and rejects
// documents that are not well formed. Errors wrap ErrParse.
//
// # Modes
//
//   - Strict (default): XML declaration validation and line/column tracking,
//     so syntax errors carry a position.
//   - Fast: the tokenizer's validation throughput preset. Syntax errors carry
//     a byte offset instead of a line and column.
//
// Both modes reject mismatched tags, multiple roots and content outside the
// root element, and both resolve the predefined and numeric entities.
//
// # Related Packages
//
//   - github.com/signadot/xmlmap/ir - IR representation
//   - github.com/signadot/xmlmap/encode - Encode IR to text
package parse

// Package libdiff computes structural differences between XML documents.
//
// # Usage
//
//	// Compare two element trees
//	changes := libdiff.Diff(oldNode, newNode)
//	for _, c := range changes {
//	    fmt.Println(c)
//	}
//
//	// Line diff of two encoded documents
//	fmt.Print(libdiff.TextDiff(oldText, newText))
//
// Children are aligned by element name, so an inserted or removed element
// is reported once rather than as a change to every following sibling.
//
// # Related Packages
//
//   - github.com/signadot/xmlmap/ir - IR representation
//   - github.com/signadot/xmlmap/encode - Encode IR to text
package libdiff

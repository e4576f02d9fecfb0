package encode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/xmlmap/ir"
)

var ErrEncoding = errors.New("encoding error")

const xmlDecl = `<?xml version="1.0" encoding="UTF-8"?>`

type EncState struct {
	line, col     int
	depth, indent int
	wire          bool
	decl          bool

	Color func(ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	if es.decl {
		if err := writeString(w, es.color(SepColor, xmlDecl), es); err != nil {
			return err
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	if es.wire {
		return nil
	}
	return writeString(w, "\n", es)
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	name := node.Name()
	if node.Tag == "" {
		return fmt.Errorf("%w: element without a name at %s", ErrEncoding, node.Path())
	}
	if err := writeString(w, es.color(SepColor, "<")+es.color(TagColor, name), es); err != nil {
		return err
	}
	for _, a := range node.Attrs {
		s := " " + es.color(AttrNameColor, a.Name) + es.color(SepColor, "=") +
			es.color(AttrValueColor, `"`+escapeAttr(a.Value)+`"`)
		if err := writeString(w, s, es); err != nil {
			return err
		}
	}
	if len(node.Children) == 0 && node.Text == "" && len(node.CData) == 0 {
		return writeString(w, es.color(SepColor, "/>"), es)
	}
	if err := writeString(w, es.color(SepColor, ">"), es); err != nil {
		return err
	}
	if node.Text != "" {
		if err := writeString(w, es.color(TextColor, escapeText(node.Text)), es); err != nil {
			return err
		}
	}
	// mixed content is written without indentation
	if node.Text != "" && len(node.Children) != 0 && !es.wire {
		es.wire = true
		defer func() { es.wire = false }()
	}
	nested := len(node.Children) != 0
	if nested {
		es.depth++
		for _, c := range node.Children {
			if err := writeNL(w, es); err != nil {
				return err
			}
			if err := encode(c, w, es); err != nil {
				return err
			}
		}
	}
	for i, seg := range node.CData {
		switch {
		case nested && !es.wire:
			if err := writeNL(w, es); err != nil {
				return err
			}
		case i > 0:
			// adjacent sections would read back as one value
			if err := writeString(w, " ", es); err != nil {
				return err
			}
		}
		if err := writeString(w, es.color(CDataColor, cdata(seg)), es); err != nil {
			return err
		}
	}
	if nested {
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	return writeString(w, es.color(SepColor, "</")+es.color(TagColor, name)+es.color(SepColor, ">"), es)
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

// Helper functions for writing
func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	if es.col == 0 {
		return nil
	}
	indentString := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	if _, err := io.WriteString(w, "\n"+indentString); err != nil {
		return err
	}
	es.line++
	es.col = len(indentString)
	return nil
}

func writeString(w io.Writer, s string, es *EncState) error {
	_, err := io.WriteString(w, s)
	es.col += len(s)
	return err
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;",
	)
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// cdata wraps s in a CDATA section, splitting it wherever s contains the
// section terminator.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

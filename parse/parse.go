package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/xsd/pkg/xmltext"

	"github.com/signadot/xmlmap/debug"
	"github.com/signadot/xmlmap/ir"
)

var ErrParse = ir.ErrParse

type frame struct {
	node *ir.Node
	text strings.Builder
}

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	if len(bytes.TrimSpace(d)) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrParse, ir.ErrEmptyInput)
	}
	dec := xmltext.NewDecoder(bytes.NewReader(d), pOpts.decoderOpts()...)
	var (
		tok   xmltext.Token
		root  *ir.Node
		stack []*frame
		buf   []byte

		// the previous token was a CDATA section
		afterCData bool
	)
	unescape := func(data []byte, needs bool) (string, error) {
		if !needs {
			return string(data), nil
		}
		// expansion of predefined and numeric references never grows the input
		if cap(buf) < len(data) {
			buf = make([]byte, len(data))
		}
		n, err := dec.UnescapeInto(buf[:len(data)], data)
		if err != nil {
			return "", err
		}
		return string(buf[:n]), nil
	}
	for {
		err := dec.ReadTokenInto(&tok)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		joinCData := afterCData && tok.Kind == xmltext.KindCDATA
		afterCData = tok.Kind == xmltext.KindCDATA
		switch tok.Kind {
		case xmltext.KindStartElement:
			node := &ir.Node{}
			setName(node, tok.Name, tok.NameColon)
			for i := range tok.Attrs {
				a := &tok.Attrs[i]
				v, err := unescape(a.Value, a.ValueNeeds)
				if err != nil {
					return nil, fmt.Errorf("%w: attribute %s of %s: %w", ErrParse, a.Name, node.Name(), err)
				}
				node.Attrs = append(node.Attrs, ir.Attr{Name: string(a.Name), Value: v})
			}
			if len(stack) == 0 {
				root = node
			} else {
				stack[len(stack)-1].node.Append(node)
			}
			stack = append(stack, &frame{node: node})
		case xmltext.KindEndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unbalanced end element %s", ErrParse, tok.Name)
			}
			top := stack[len(stack)-1]
			top.node.Text = top.text.String()
			stack = stack[:len(stack)-1]
		case xmltext.KindCharData:
			if len(stack) == 0 || isSpace(tok.Text) {
				continue
			}
			s, err := unescape(tok.Text, tok.TextNeeds)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrParse, stack[len(stack)-1].node.Path(), err)
			}
			stack[len(stack)-1].text.WriteString(s)
		case xmltext.KindCDATA:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1].node
			// adjacent sections are one value split around "]]>"
			if joinCData {
				top.CData[len(top.CData)-1] += string(tok.Text)
				break
			}
			top.CData = append(top.CData, string(tok.Text))
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, ir.ErrEmptyInput)
	}
	if debug.Parse() {
		debug.Logf("parsed %s (%s mode)\n", root.Name(), pOpts.mode)
	}
	return root, nil
}

func setName(node *ir.Node, name []byte, colon int) {
	if colon < 0 {
		node.Tag = string(name)
		return
	}
	node.Prefix = string(name[:colon])
	node.Tag = string(name[colon+1:])
}

func isSpace(d []byte) bool {
	for _, c := range d {
		switch c {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

package main

import (
	"fmt"
	"io"

	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/format"
	"github.com/signadot/xmlmap/ir"
	"github.com/signadot/xmlmap/parse"

	"github.com/scott-cotton/cli"
)

func tree(cfg *TreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tree.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachInput(cc, args, func(_ string, d []byte) error {
		return treeDoc(cc.Out, d, cfg.outFormat(), cfg.parseOpts()...)
	})
}

func treeDoc(w io.Writer, d []byte, f format.Format, opts ...parse.ParseOption) error {
	node, err := parse.Parse(d, opts...)
	if err != nil {
		return err
	}
	var out []byte
	switch f {
	case format.JSONFormat:
		out, err = ir.ToJSON(node)
	case format.YAMLFormat:
		out, err = ir.ToYAML(node)
	case format.XMLFormat:
		return encode.Encode(node, w)
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, f)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

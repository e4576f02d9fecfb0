package main

import (
	"fmt"
	"io"

	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/ir"
	"github.com/signadot/xmlmap/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	y1, err := getXMLFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	y2, err := getXMLFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if cfg.Reverse {
		y1, y2 = y2, y1
	}
	if diffNodes(cc.Out, y1, y2, cfg.Text) {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffNodes writes the differences between from and to, reporting whether
// there were any.
func diffNodes(w io.Writer, from, to *ir.Node, text bool) bool {
	if text {
		d := libdiff.TextDiff(encode.MustString(from)+"\n", encode.MustString(to)+"\n")
		io.WriteString(w, d)
		return d != ""
	}
	changes := libdiff.Diff(from, to)
	for _, c := range changes {
		fmt.Fprintln(w, c)
	}
	return len(changes) != 0
}

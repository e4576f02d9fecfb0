package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/ir"
	"github.com/signadot/xmlmap/libdiff"
	"github.com/signadot/xmlmap/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	failed := 0
	err = eachInput(cc, args, func(name string, d []byte) error {
		ok, err := checkDoc(cc.Out, d, cfg.Mode, cfg.Modes, cfg.WireOut)
		if err != nil {
			return err
		}
		if !ok {
			failed++
			theLog.Warn("round trip failed", "file", name)
		} else if !cfg.Quiet {
			theLog.Info("ok", "file", name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkDoc reports whether d parses to the same tree before and after an
// encode. Differences are written to w.
func checkDoc(w io.Writer, d []byte, mode parse.Mode, modes, wire bool) (bool, error) {
	first, err := parse.Parse(d, parse.ParseMode(mode))
	if err != nil {
		return false, err
	}
	ok := true
	if modes {
		other := parse.Fast
		if mode == parse.Fast {
			other = parse.Strict
		}
		alt, err := parse.Parse(d, parse.ParseMode(other))
		if err != nil {
			return false, fmt.Errorf("%s parse: %w", other, err)
		}
		if !ir.Equal(first, alt) {
			ok = false
			fmt.Fprintf(w, "%s and %s parses differ:\n", mode, other)
			for _, c := range libdiff.Diff(first, alt) {
				fmt.Fprintln(w, c)
			}
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(first, buf, encode.EncodeWire(wire)); err != nil {
		return false, err
	}
	second, err := parse.Parse(buf.Bytes(), parse.ParseMode(mode))
	if err != nil {
		return false, fmt.Errorf("re-parsing encoded output: %w", err)
	}
	if !ir.Equal(first, second) {
		ok = false
		fmt.Fprint(w, libdiff.TextDiff(encode.MustString(first)+"\n", encode.MustString(second)+"\n"))
	}
	return ok, nil
}
